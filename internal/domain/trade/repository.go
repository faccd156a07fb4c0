package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trade-hub/trade-hub/internal/domain/ledger"
)

// ErrVersionConflict is returned by CommitTransition when the trade row
// changed since the validation read.
var ErrVersionConflict = errors.New("trade version conflict")

// Filter controls trade listing.
type Filter struct {
	Party  *uuid.UUID
	Status *Status
}

// TransitionCommit is the atomic unit of a negotiation action: the updated
// trade row, the optional new item revision, the history entry and the
// optional message entry all commit together or not at all.
type TransitionCommit struct {
	Trade *Trade
	// ExpectedVersion is the version observed at the validation read; the
	// commit fails with ErrVersionConflict when the row has moved past it.
	ExpectedVersion int64
	// Items holds the new item revision, nil when the action does not touch
	// the item set.
	Items ItemSet
	// History is required for every status-changing action.
	History *ledger.HistoryEntry
	// Message is optional.
	Message *ledger.Message
}

// Repository defines persistence for trades and their item revisions.
type Repository interface {
	Create(ctx context.Context, t *Trade, items ItemSet, initial *ledger.Message) error
	GetByID(ctx context.Context, tradeID uuid.UUID) (*Trade, error)
	GetItems(ctx context.Context, tradeID uuid.UUID, revision int) (ItemSet, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Trade, error)
	CommitTransition(ctx context.Context, commit TransitionCommit) error
}
