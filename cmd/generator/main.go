package main

import (
	"os"

	"github.com/MichalMitros/google-feed-generator/cmd/generator/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is configuration and logger shared by subcommands.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
}

func newRootCommand() *cobra.Command {
	e := &env{}
	var envFile string

	root := &cobra.Command{
		Use:           "google-feed-generator",
		Short:         "Google Shopping feed generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}

			cfg, err := config.Load(files...)
			if err != nil {
				stderrLogger := zerolog.New(os.Stderr)
				stderrLogger.Error().Err(err).Msg("can't load configuration")
				return err
			}

			logger, err := cfg.Logger()
			if err != nil {
				stderrLogger := zerolog.New(os.Stderr)
				stderrLogger.Error().Err(err).Msg("can't create logger")
				return err
			}

			e.cfg = cfg
			e.logger = logger

			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file loaded before reading configuration (default .env)")

	root.AddCommand(
		newServeCommand(e),
		newGenerateCommand(e),
		newMigrateCommand(e),
	)

	return root
}
