// Package ledger holds the two append-only records of a trade: the
// conversational message ledger and the authoritative history ledger. Both
// are ordered by creation time ascending and are never mutated or deleted.
package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/trade-hub/trade-hub/internal/domain/user"
)

// MessageType tags a message as human free text or protocol-derived.
type MessageType string

const (
	MessageTypeText         MessageType = "TEXT"
	MessageTypeCounteroffer MessageType = "COUNTEROFFER"
	MessageTypeAcceptance   MessageType = "ACCEPTANCE"
	MessageTypeRejection    MessageType = "REJECTION"
)

// Message is one entry of the message ledger.
type Message struct {
	ID          int64           `json:"id"`
	MessageID   uuid.UUID       `json:"messageId"`
	TradeID     uuid.UUID       `json:"tradeId"`
	UserID      uuid.UUID       `json:"userId"`
	Body        string          `json:"message"`
	MessageType MessageType     `json:"messageType"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Author is populated on display reads only.
	Author *user.User `json:"author,omitempty"`
}

// HistoryEntry is one entry of the history ledger, the audit of record for
// every status transition. Statuses are recorded as raw strings so the ledger
// stays decoupled from the trade package.
type HistoryEntry struct {
	ID        int64           `json:"id"`
	EntryID   uuid.UUID       `json:"entryId"`
	TradeID   uuid.UUID       `json:"tradeId"`
	UserID    uuid.UUID       `json:"userId"`
	Action    string          `json:"action"`
	OldStatus string          `json:"oldStatus"`
	NewStatus string          `json:"newStatus"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`

	// Actor is populated on display reads only.
	Actor *user.User `json:"actor,omitempty"`
}
