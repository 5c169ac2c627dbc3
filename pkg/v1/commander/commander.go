package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// GenerateCommander sends generate commands.
type GenerateCommander struct {
	sender Sender
}

// NewGenerateCommander returns new GenerateCommander using provided sender for sending messages.
func NewGenerateCommander(sender Sender) GenerateCommander {
	return GenerateCommander{
		sender: sender,
	}
}

// SendGenerateCommand sends generate command for provided store, AllStores generates feeds of all configured stores.
func (c GenerateCommander) SendGenerateCommand(ctx context.Context, storeID int) error {
	cmd := GenerateCommand{
		StoreID: storeID,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal generate command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
