// Command ebe runs the click game in a window or a terminal, or replays a
// scripted click session headlessly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ebe:", err)
		os.Exit(1)
	}
}
