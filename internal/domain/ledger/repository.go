package ledger

import (
	"context"

	"github.com/google/uuid"
)

// MessageRepository defines persistence for the message ledger. Appends for
// status-changing actions happen inside the trade transition commit; Append
// here covers plain TEXT messages only.
type MessageRepository interface {
	Append(ctx context.Context, m *Message) error
	ListByTrade(ctx context.Context, tradeID uuid.UUID) ([]*Message, error)
}

// HistoryRepository defines read access to the history ledger. Entries are
// only ever written as part of a trade transition commit.
type HistoryRepository interface {
	ListByTrade(ctx context.Context, tradeID uuid.UUID) ([]*HistoryEntry, error)
}
