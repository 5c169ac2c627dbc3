package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/MichalMitros/google-feed-generator/internal/platform/rabbitmq"
	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Runner --filename runner.go
//go:generate mockery --name Consumer --filename consumer.go
//go:generate mockery --name Publisher --filename publisher.go

// Runner generates store feeds.
type Runner interface {
	// Run generates feeds of provided stores or of all configured stores when storeIDs is empty.
	Run(ctx context.Context, storeIDs []int) []models.RunResult
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Publisher publishes messages to routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	consumer          Consumer
	publisher         Publisher
	runner            Runner
	resultsRoutingKey string
	logger            *zerolog.Logger
}

// NewHandler returns new RMQHandler. Results are published to resultsRoutingKey unless it's empty.
func NewHandler(
	consumer Consumer,
	publisher Publisher,
	runner Runner,
	resultsRoutingKey string,
	logger *zerolog.Logger,
) *RMQHandler {
	return &RMQHandler{
		consumer:          consumer,
		publisher:         publisher,
		runner:            runner,
		resultsRoutingKey: resultsRoutingKey,
		logger:            logger,
	}
}

// Start starts consuming and handling generate commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle runs generation requested by message and publishes its results.
// It returns error if generation of any store failed.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	var storeIDs []int
	if cmd.StoreID != commander.AllStores {
		storeIDs = []int{cmd.StoreID}
	}

	h.logger.Debug().
		Int("storeId", cmd.StoreID).
		Msg("generation started")

	var errs []error
	for _, result := range h.runner.Run(ctx, storeIDs) {
		if !result.Success {
			errs = append(errs, fmt.Errorf("generation of store %d failed: %s", result.StoreID, result.Message))
		}

		if err := h.publish(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}

	h.logger.Debug().
		Int("storeId", cmd.StoreID).
		Int("failed", len(errs)).
		Msg("generation finished")

	return errors.Join(errs...)
}

func (h *RMQHandler) publish(ctx context.Context, result models.RunResult) error {
	if h.resultsRoutingKey == "" {
		return nil
	}

	event := commander.FeedGenerated{
		StoreID: result.StoreID,
		Success: result.Success,
		Message: result.Message,
	}
	if result.File != nil {
		event.URL = result.File.URL
		event.Items = result.File.Items
		event.GeneratedAt = &result.File.GeneratedAt
	}

	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal feed generated event: %w", err)
	}

	if err := h.publisher.Publish(ctx, h.resultsRoutingKey, msg); err != nil {
		return fmt.Errorf("can't publish feed generated event: %w", err)
	}

	return nil
}

func decodeMessage(msg []byte) (*commander.GenerateCommand, error) {
	var cmd commander.GenerateCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode generate command: %w", err)
	}

	if cmd.StoreID < 0 {
		return nil, fmt.Errorf("invalid store id %d in generate command", cmd.StoreID)
	}

	return &cmd, nil
}
