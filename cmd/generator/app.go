package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/MichalMitros/google-feed-generator/cmd/generator/config"
	"github.com/MichalMitros/google-feed-generator/internal/catalog"
	"github.com/MichalMitros/google-feed-generator/internal/decoder"
	"github.com/MichalMitros/google-feed-generator/internal/exporter"
	"github.com/MichalMitros/google-feed-generator/internal/fetcher"
	"github.com/MichalMitros/google-feed-generator/internal/generator"
	"github.com/MichalMitros/google-feed-generator/internal/metadata"
	"github.com/MichalMitros/google-feed-generator/internal/platform/lock"
	"github.com/MichalMitros/google-feed-generator/internal/platform/storage"
	"github.com/MichalMitros/google-feed-generator/internal/scheduler"
	"github.com/MichalMitros/google-feed-generator/internal/settings"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

const (
	// UserAgent is user agent header value used when fetching catalog exports.
	UserAgent = "google-feed-generator/0.0.1"
)

// app holds wired application components.
type app struct {
	metadata  *metadata.Service
	source    *catalog.Source
	exporter  *exporter.Exporter
	scheduler *scheduler.Scheduler
	closers   []func() error
}

func newApp(ctx context.Context, cfg config.Config, logger *zerolog.Logger) (*app, error) {
	a := &app{}

	recordStorage, err := a.openStorage(cfg)
	if err != nil {
		a.close(logger)
		return nil, err
	}
	a.metadata = metadata.NewService(recordStorage)

	feedSettings := cfg.FeedSettings()
	if feedSettings.StaticFileName == "" {
		var created bool
		feedSettings.StaticFileName, created, err = settings.PersistentFileName(cfg.ExportDir)
		if err != nil {
			a.close(logger)
			return nil, err
		}
		if created {
			logger.Warn().
				Str("file", feedSettings.StaticFileName).
				Msg("FEED_STATIC_FILE_NAME is not set, generated name stored in export directory")
		}
	}
	storeSettings := settings.NewStatic(feedSettings)

	a.source = catalog.NewSource(fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent), cfg.CatalogURL)

	gen := generator.NewGenerator(a.metadata, a.source, storeSettings, generator.WithLogger(logger))

	locker, err := a.openLocker(ctx, cfg)
	if err != nil {
		a.close(logger)
		return nil, err
	}

	ops := []exporter.Option{
		exporter.WithLocker(locker, cfg.Redis.LockTTL),
		exporter.WithLanguage(cfg.Feed.LanguageID),
		exporter.WithLogger(logger),
	}
	if cfg.Feed.Verify {
		ops = append(ops, exporter.WithVerifier(decoder.Decoder{}))
	}
	a.exporter = exporter.NewExporter(gen, storeSettings, cfg.ExportDir, publicFilesURL(cfg), ops...)

	a.scheduler = scheduler.NewScheduler(
		a.exporter,
		cfg.Feed.StoreIDs,
		scheduler.WithParallelism(cfg.Feed.Parallelism),
		scheduler.WithLogger(logger),
	)

	return a, nil
}

func (a *app) openStorage(cfg config.Config) (metadata.Storage, error) {
	if cfg.StorageDriver == config.StorageDriverSQLite {
		embedded, err := storage.OpenEmbedded(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, embedded.Close)

		return embedded, nil
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pgDB.Close)

	return storage.NewPostgres(pgDB), nil
}

// openLocker returns Redis lock when Redis is configured and in-process lock otherwise.
func (a *app) openLocker(ctx context.Context, cfg config.Config) (exporter.Locker, error) {
	if cfg.Redis.Addr == "" {
		return lock.NewLocal(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return lock.NewRedis(client), nil
}

func (a *app) close(logger *zerolog.Logger) {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close connections")
	}
}

func publicFilesURL(cfg config.Config) string {
	return strings.TrimSuffix(cfg.PublicURL, "/") + "/" + strings.Trim(cfg.ExportURLPath, "/")
}
