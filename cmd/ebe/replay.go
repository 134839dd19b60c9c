package main

import (
	"github.com/spf13/cobra"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/host/headless"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		seed        uint64
		checkAssets bool
	)

	cmd := &cobra.Command{
		Use:     "replay SCRIPT.yaml",
		Short:   "Replay a click script without a window and print a report",
		Example: "ebe replay testdata/clicks.yaml --seed 7",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd, cmd.ErrOrStderr()); err != nil {
				return err
			}

			script, err := headless.LoadScript(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				script.Seed = seed
			}

			runner := &headless.Runner{Script: script, Logger: &a.log}
			if checkAssets {
				runner.Catalog = assets.NewCatalog(&assets.FSLoader{FS: assets.Dir(a.cfg.AssetDir)})
			}

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Info().
				Uint64("spawned", report.Spawned).
				Uint64("despawned", report.Despawned).
				Dur("elapsed", report.Elapsed).
				Msg("replay finished")
			return report.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the script's seed")
	cmd.Flags().BoolVar(&checkAssets, "check-assets", false, "require the asset files to exist in asset_dir (or the built-in set)")
	return cmd
}
