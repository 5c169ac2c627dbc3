package main

import (
	"database/sql"
	"errors"

	"github.com/MichalMitros/google-feed-generator/cmd/generator/config"
	"github.com/MichalMitros/google-feed-generator/internal/platform/storage"
	"github.com/spf13/cobra"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres schema migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if e.cfg.StorageDriver != config.StorageDriverPostgres {
				e.logger.Info().
					Str("driver", e.cfg.StorageDriver).
					Msg("embedded storage migrates itself on start")
				return nil
			}

			pgDB, err := sql.Open("postgres", e.cfg.DatabaseURL)
			if err != nil {
				e.logger.Error().Err(err).Msg("can't open Postgres connection")
				return err
			}

			version, err := storage.Migrate(pgDB)
			if closeErr := pgDB.Close(); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
			if err != nil {
				e.logger.Error().Err(err).Msg("can't migrate database")
				return err
			}

			e.logger.Info().Uint("version", version).Msg("database migrated")

			return nil
		},
	}
}
