package helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/decoder"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
)

// PrepareMockedHTTPServer is helper function for mocking host catalog export endpoint.
func PrepareMockedHTTPServer(t *testing.T, catalogExport []byte, statusCode int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.Header().Add(contentType, "application/json")
		wrt.WriteHeader(statusCode)
		_, _ = wrt.Write(catalogExport)
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// WaitForFeedGenerated is blocking helper function, returns the first event published to results queue.
func WaitForFeedGenerated(t *testing.T, channel *amqp.Channel, queue string, timeout time.Duration) commander.FeedGenerated {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "feed generated event wasn't published in time")
		case <-time.After(250 * time.Millisecond):
		}

		msg, ok, err := channel.Get(queue, true)
		if err != nil {
			require.FailNow(t, "can't get message", queue, err)
		}
		if !ok {
			continue
		}

		var event commander.FeedGenerated
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			require.FailNow(t, "can't unmarshal feed generated event", err)
		}

		return event
	}
}

// ReadFeed is helper function which decodes all items of generated feed file.
func ReadFeed(t *testing.T, path string) []models.FeedItem {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		require.FailNow(t, "can't open feed file", path, err)
	}
	defer file.Close()

	results := make(chan models.ParsingResult)
	decodeErr := make(chan error, 1)
	go func() {
		defer close(results)
		decodeErr <- decoder.Decoder{}.Decode(context.Background(), file, results)
	}()

	var items []models.FeedItem
	for result := range results {
		require.NoError(t, result.Error, "should decode feed item")
		items = append(items, result.Item)
	}
	require.NoError(t, <-decodeErr, "should decode feed")

	return items
}
