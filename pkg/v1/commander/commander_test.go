package commander_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander"
	"github.com/MichalMitros/google-feed-generator/pkg/v1/commander/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitSendGenerateCommand(t *testing.T) {
	storeID := rand.Intn(1000) + 1

	tests := map[string]struct {
		storeID     int
		body        []byte
		senderError error
		wantErr     error
	}{
		"ok": {
			storeID: storeID,
			body:    []byte(fmt.Sprintf(`{"storeId":%d}`, storeID)),
		},
		"all stores": {
			storeID: commander.AllStores,
			body:    []byte(`{"storeId":0}`),
		},
		"sender error": {
			storeID:     storeID,
			body:        []byte(fmt.Sprintf(`{"storeId":%d}`, storeID)),
			senderError: assert.AnError,
			wantErr:     assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sender := mocks.NewSender(t)
			sender.On("Send", mock.Anything, tt.body).Return(tt.senderError)

			cmndr := commander.NewGenerateCommander(sender)
			err := cmndr.SendGenerateCommand(context.TODO(), tt.storeID)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
