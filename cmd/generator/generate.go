package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newGenerateCommand(e *env) *cobra.Command {
	var storeIDs []int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate static feed files once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, e.cfg, &e.logger)
			if err != nil {
				e.logger.Error().Err(err).Msg("can't start feed generator")
				return err
			}
			defer a.close(&e.logger)

			var failed []error
			for _, result := range a.scheduler.Run(ctx, storeIDs) {
				if !result.Success {
					failed = append(failed, fmt.Errorf("store %d: %s", result.StoreID, result.Message))
					continue
				}

				e.logger.Info().
					Int("storeId", result.StoreID).
					Str("file", result.File.Path).
					Int("items", result.File.Items).
					Str("url", result.File.URL).
					Msg("feed generated")
			}

			if err := errors.Join(failed...); err != nil {
				e.logger.Error().Err(err).Msg("feed generation failed")
				return err
			}

			return nil
		},
	}

	cmd.Flags().IntSliceVar(&storeIDs, "store", nil, "store to generate, repeatable (default all configured stores)")

	return cmd
}
