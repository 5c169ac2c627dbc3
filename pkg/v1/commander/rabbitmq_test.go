package commander_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander"
	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitRabbitMQSenderSend(t *testing.T) {
	storeID := rand.Intn(1000) + 1
	body := []byte(fmt.Sprintf(`{"storeId":%d}`, storeID))
	routingKey := faker.Word()

	tests := map[string]struct {
		publisherError error
		wantErr        error
	}{
		"ok": {},
		"publisher error": {
			publisherError: assert.AnError,
			wantErr:        assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			publisher := mocks.NewRabbitMQPublisher(t)
			publisher.On("Publish", mock.Anything, routingKey, body).Return(tt.publisherError)

			sender := commander.NewRabbitMQSender(publisher, routingKey)
			err := sender.Send(context.TODO(), body)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitRabbitMQSenderDefaultRoutingKey(t *testing.T) {
	body := []byte(`{"storeId":1}`)

	publisher := mocks.NewRabbitMQPublisher(t)
	publisher.On("Publish", mock.Anything, commander.DefaultRoutingKey, body).Return(nil).Once()

	err := commander.NewRabbitMQSender(publisher, "").Send(context.TODO(), body)

	require.NoError(t, err, "shouldn't return any error")
}
