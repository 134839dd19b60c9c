package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plus3/ebeclick/config"
	"github.com/plus3/ebeclick/logging"
)

// app carries what the persistent flags resolved to into the subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	log    zerolog.Logger
	closer io.Closer
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ebe",
		Short:         "Click to launch chickens and dogs across a farm",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	root.AddCommand(
		newRunCmd(a),
		newReplayCmd(a),
	)
	return root
}

// load resolves the config and opens the logger. Log output goes to the log
// file when one is configured and to w otherwise.
func (a *app) load(cmd *cobra.Command, w io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg, w)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closer = cfg, log, closer
	return nil
}
