package scheduler

import (
	"context"
	"fmt"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Exporter --filename exporter.go

const defaultParallelism = 1

// Exporter materializes store feeds.
type Exporter interface {
	// Export generates store feed into its static file.
	Export(ctx context.Context, storeID int) (models.GeneratedFile, error)
}

// Option is custom configuration of Scheduler.
type Option func(s *Scheduler)

// Scheduler runs feed generation for stores on demand and periodically.
type Scheduler struct {
	exporter    Exporter
	storeIDs    []int
	parallelism int
	logger      *zerolog.Logger
	cron        *cron.Cron
}

// NewScheduler returns new Scheduler of provided stores.
func NewScheduler(exporter Exporter, storeIDs []int, ops ...Option) *Scheduler {
	nop := zerolog.Nop()
	s := &Scheduler{
		exporter:    exporter,
		storeIDs:    storeIDs,
		parallelism: defaultParallelism,
		logger:      &nop,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// StoreIDs returns configured stores.
func (s *Scheduler) StoreIDs() []int {
	return s.storeIDs
}

// Run generates feeds of provided stores, or of all configured stores when storeIDs is empty.
// Failure of one store doesn't stop the others, results are returned in stores order.
func (s *Scheduler) Run(ctx context.Context, storeIDs []int) []models.RunResult {
	if len(storeIDs) == 0 {
		storeIDs = s.storeIDs
	}

	runID := uuid.NewString()
	results := make([]models.RunResult, len(storeIDs))

	var eg errgroup.Group
	eg.SetLimit(s.parallelism)

	for ix, storeID := range storeIDs {
		eg.Go(func() error {
			results[ix] = s.runStore(ctx, runID, storeID)
			return nil
		})
	}

	_ = eg.Wait()

	return results
}

func (s *Scheduler) runStore(ctx context.Context, runID string, storeID int) models.RunResult {
	logger := s.logger.With().Str("runId", runID).Int("storeId", storeID).Logger()
	logger.Debug().Msg("feed generation started")

	file, err := s.exporter.Export(ctx, storeID)
	if err != nil {
		logger.Error().Err(err).Msg("feed generation failed")
		return models.RunResult{
			StoreID: storeID,
			Message: err.Error(),
			Err:     err,
		}
	}

	logger.Debug().Int("items", file.Items).Str("file", file.Name).Msg("feed generation finished")

	return models.RunResult{
		StoreID: storeID,
		Success: true,
		File:    &file,
	}
}

// Start runs all configured stores on cron schedule until Stop is called.
// Scheduled runs are skipped while the previous one is still running.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := s.cron.AddFunc(spec, func() {
		results := s.Run(ctx, nil)
		failed := 0
		for _, result := range results {
			if !result.Success {
				failed++
			}
		}
		s.logger.Info().Int("stores", len(results)).Int("failed", failed).Msg("scheduled feed generation finished")
	})
	if err != nil {
		return fmt.Errorf("can't schedule feed generation: %w", err)
	}

	s.cron.Start()

	return nil
}

// Stop stops scheduling and waits for running generation.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
}

// WithParallelism sets number of stores generated at once.
func WithParallelism(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithLogger sets Scheduler's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}
