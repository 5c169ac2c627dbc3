package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/api"
	"github.com/MichalMitros/google-feed-generator/internal/handler"
	"github.com/MichalMitros/google-feed-generator/internal/platform/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve admin API and feed files, consume generate commands and run scheduled generation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), e)
		},
	}
}

func serve(parent context.Context, e *env) error {
	logger := &e.logger
	cfg := e.cfg

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("can't start feed generator")
		return err
	}
	defer a.close(logger)

	// consume generate commands only when RabbitMQ is configured
	var mq *rabbitmq.RabbitMQ
	if cfg.RabbitMQ.URL != "" {
		amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Error().Err(err).Msg("can't open RabbitMQ connection")
			return err
		}
		a.closers = append(a.closers, amqpConnection.Close)

		mq, err = rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Error().Err(err).Msg("can't open RabbitMQ channel")
			return err
		}

		if err := mq.Declare(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
			logger.Error().Err(err).Msg("can't declare RabbitMQ topology")
			return err
		}

		han := handler.NewHandler(mq, mq, a.scheduler, cfg.RabbitMQ.ResultRoutingKey, logger)
		if err := han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
			logger.Error().Err(err).Msg("can't start consuming")
			return err
		}
	}

	if cfg.Feed.Schedule != "" {
		if err := a.scheduler.Start(ctx, cfg.Feed.Schedule); err != nil {
			logger.Error().Err(err).Msg("can't start scheduler")
			return err
		}
	}

	ops := []api.Option{
		api.WithStaticFiles(cfg.ExportURLPath, cfg.ExportDir),
		api.WithLogger(logger),
	}
	if cfg.APIKey != "" {
		ops = append(ops, api.WithAPIKey(cfg.APIKey))
	}
	srv := api.NewServer(a.metadata, a.source, a.scheduler, a.exporter, ops...)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(cfg.HTTPAddr)
	}()

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("feed generator up and running")

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
		}
		cancel()
	}

	logger.Info().Msg("graceful shutdown start")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(parent), shutdownTimeout)
	defer cancelShutdown()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error().Err(shutdownErr).Msg("can't stop http server")
	}

	// wait for consumer and scheduled run to finish
	if mq != nil {
		<-mq.Done()
	}
	a.scheduler.Stop()

	logger.Info().Msg("graceful shutdown successful")

	return err
}
