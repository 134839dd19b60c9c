package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/config"
	"github.com/plus3/ebeclick/host/ebitenhost"
	"github.com/plus3/ebeclick/host/termhost"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		host    string
		seed    uint64
		debugUI bool
		scale   int
		mute    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the game in a window or in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd, os.Stderr); err != nil {
				return err
			}

			cfg := a.cfg
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("debug-ui") {
				cfg.DebugUI = debugUI
			}
			if cmd.Flags().Changed("scale") {
				cfg.Scale = scale
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// The terminal host owns the terminal; without a log file its logs are dropped.
			if cfg.Host == config.HostTerminal && cfg.LogFile == "" {
				a.log = a.log.Output(io.Discard)
			}
			a.log.Info().Str("host", cfg.Host).Uint64("seed", cfg.Seed).Msg("starting")

			assetsFS := assets.Dir(cfg.AssetDir)
			switch cfg.Host {
			case config.HostTerminal:
				h, err := termhost.New(termhost.Options{
					Assets: assetsFS,
					Seed:   cfg.Seed,
					Mute:   mute,
					Logger: &a.log,
				})
				if err != nil {
					return err
				}
				defer h.Close()
				return h.Run(cmd.Context())

			case config.HostEbiten:
				h, err := ebitenhost.New(ebitenhost.Options{
					Title:   cfg.Title,
					Scale:   cfg.Scale,
					Assets:  assetsFS,
					Seed:    cfg.Seed,
					DebugUI: cfg.DebugUI,
					Logger:  &a.log,
				})
				if err != nil {
					return err
				}
				return h.Run()
			}
			return errors.Errorf("unknown host %q", cfg.Host)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&host, "host", config.HostEbiten, "where to run: ebiten or terminal")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")
	flags.BoolVar(&debugUI, "debug-ui", false, "show the ImGui stats overlay (ebiten only)")
	flags.IntVar(&scale, "scale", 2, "window zoom (ebiten only)")
	flags.BoolVar(&mute, "mute", false, "do not open the audio device (terminal only)")
	return cmd
}
