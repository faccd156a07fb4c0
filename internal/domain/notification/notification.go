// Package notification defines the SSE types used to push committed trade
// updates to connected parties. Delivery is best effort; missing a push never
// affects a trade invariant.
package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SSEClient represents an active SSE connection subscribed by wallet address.
type SSEClient struct {
	ClientID    string
	Wallet      *string
	ConnectedAt time.Time
	MessageChan chan *SSEMessage
}

// NewSSEClient creates a new SSE client.
func NewSSEClient(clientID string, wallet *string) *SSEClient {
	return &SSEClient{
		ClientID:    clientID,
		Wallet:      wallet,
		ConnectedAt: time.Now().UTC(),
		MessageChan: make(chan *SSEMessage, 100),
	}
}

// Close closes the client's message channel.
func (c *SSEClient) Close() {
	close(c.MessageChan)
}

// SSEMessage represents a message to be sent via SSE.
type SSEMessage struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewSSEMessage creates a new SSE message.
func NewSSEMessage(event string, data json.RawMessage) *SSEMessage {
	return &SSEMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Hub is the broadcast surface the application services depend on.
type Hub interface {
	BroadcastToWallet(wallet string, message *SSEMessage)
}
