// Command ebe-stress clicks on every frame as fast as the world can step and
// reports update times and entity counts.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/game"
)

type options struct {
	duration       time.Duration
	prepopulate    int
	seed           uint64
	gcPauseMetrics bool
}

// clicker presses the left button at a random position on every frame.
type clicker struct {
	rng *rand.Rand
}

func (c *clicker) Sample() game.PointerState {
	return game.PointerState{
		X:           c.rng.Float32() * game.SceneWidth,
		Y:           c.rng.Float32() * game.SceneHeight,
		Inside:      true,
		Width:       game.SceneWidth,
		Height:      game.SceneHeight,
		JustPressed: game.Buttons(game.ButtonLeft),
	}
}

type nullSprites struct{}

func (nullSprites) Place(assets.Handle, float32, float32, float32) {}

// prepopulate spawns n projectiles spread over the scene, moving the way
// clicked ones do.
func prepopulate(w *game.World, rng *rand.Rand, n int) {
	for range n {
		kind := game.KindDog
		if rng.Float32() < game.ChickenChance {
			kind = game.KindChicken
		}
		w.Storage.Spawn(
			game.Transform{
				X: (rng.Float32() - 0.5) * game.SceneWidth,
				Y: (rng.Float32() - 0.5) * game.SceneHeight,
				Z: game.ProjectileDepth,
			},
			game.Sprite{Image: w.Assets.SpriteFor(kind)},
			game.Moveable{
				AutoDespawn: true,
				VelX:        game.MinVelX + (game.MaxVelX-game.MinVelX)*rng.Float32(),
				VelY:        game.MinVelY + (game.MaxVelY-game.MinVelY)*rng.Float32(),
			},
			game.Critter{Kind: kind},
		)
	}
}

func run(ctx context.Context, opts options, log zerolog.Logger) (*Report, error) {
	seed := opts.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	world, err := game.NewWorld(game.Options{
		Catalog: assets.NewCatalog(assets.NameLoader),
		Input:   &clicker{rng: rng},
		Sprites: nullSprites{},
		Seed:    seed,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("projectiles", opts.prepopulate).Msg("populating storage")
	prepopulate(world, rng, opts.prepopulate)

	report := &Report{
		Duration:       opts.duration,
		Prepopulate:    opts.prepopulate,
		Seed:           seed,
		GCPauseMetrics: opts.gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", opts.duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			world.Step()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			drawStart := time.Now()
			world.Draw()
			report.DrawTime.Samples = append(report.DrawTime.Samples, time.Since(drawStart))

			report.PeakLive = max(report.PeakLive, world.Storage.Len())
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.DrawTime.Finalize()
	report.Counters = world.Counters()
	report.Storage = world.Storage.CollectStats()
	report.Scheduler = world.Update.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Int64("updates", report.TotalUpdates).Msg("simulation finished")
	return report, nil
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "ebe-stress",
		Short:        "Stress the click game's systems with a click on every frame",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()

			report, err := run(cmd.Context(), opts, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n\n--- Stress Test Report ---")
			if err := report.Generate(out); err != nil {
				return err
			}
			fmt.Fprintln(out, "--- End of Report ---")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flags.IntVar(&opts.prepopulate, "entities", 10000, "The number of projectiles to create before the first frame.")
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one.")
	flags.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

