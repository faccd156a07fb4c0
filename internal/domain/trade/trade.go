package trade

import (
	"time"

	"github.com/google/uuid"

	"github.com/trade-hub/trade-hub/internal/apperror"
)

// Status represents trade status.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusCountered      Status = "COUNTERED"
	StatusAgreed         Status = "AGREED"
	StatusEscrowDeployed Status = "ESCROW_DEPLOYED"
	StatusDeposited      Status = "DEPOSITED"
	StatusFinalized      Status = "FINALIZED"
	StatusCanceled       Status = "CANCELED"
	StatusRejected       Status = "REJECTED"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusCanceled || s == StatusRejected
}

// Side identifies which party of a trade a user or item belongs to.
type Side string

const (
	SideInitiator    Side = "INITIATOR"
	SideCounterparty Side = "COUNTERPARTY"
)

// Action is the closed set of negotiation actions a party can submit.
type Action string

const (
	ActionCounteroffer Action = "counteroffer"
	ActionAccept       Action = "accept"
	ActionReject       Action = "reject"
	ActionCancel       Action = "cancel"
	ActionMessage      Action = "message"
)

// ParseAction validates a raw action string against the closed set.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionCounteroffer, ActionAccept, ActionReject, ActionCancel, ActionMessage:
		return Action(raw), nil
	case "":
		return "", apperror.Validationf("action is required")
	default:
		return "", apperror.Validationf("unknown action %q", raw)
	}
}

// Trade represents a proposed exchange between two parties.
type Trade struct {
	ID             int64      `json:"id"`
	TradeID        uuid.UUID  `json:"tradeId"`
	Status         Status     `json:"status"`
	InitiatorID    uuid.UUID  `json:"initiatorId"`
	CounterpartyID uuid.UUID  `json:"counterpartyId"`
	FairnessScore  float64    `json:"fairnessScore"`
	ItemRevision   int        `json:"itemRevision"`
	Version        int64      `json:"version"`
	EscrowAddress  *string    `json:"escrowAddress,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	AgreedAt       *time.Time `json:"agreedAt,omitempty"`
	CanceledAt     *time.Time `json:"canceledAt,omitempty"`
	FinalizedAt    *time.Time `json:"finalizedAt,omitempty"`
}

// RoleOf resolves which side of the trade a user is on.
func (t *Trade) RoleOf(userID uuid.UUID) (Side, bool) {
	switch userID {
	case t.InitiatorID:
		return SideInitiator, true
	case t.CounterpartyID:
		return SideCounterparty, true
	default:
		return "", false
	}
}

// Transition resolves the status that results from a party action. It is the
// single authority for role gating and status gating: Forbidden when the role
// does not own the action, StateConflict when the current status does not
// admit it. ActionMessage never changes status but is still rejected on
// frozen trades.
func Transition(current Status, action Action, role Side) (Status, error) {
	switch action {
	case ActionCounteroffer:
		if role != SideCounterparty {
			return current, apperror.Forbiddenf("only the counterparty can submit a counteroffer")
		}
		if current != StatusPending && current != StatusCountered {
			return current, apperror.Conflictf("cannot counteroffer a trade in status %s", current)
		}
		return StatusCountered, nil
	case ActionAccept:
		if role != SideCounterparty {
			return current, apperror.Forbiddenf("only the counterparty can accept")
		}
		if current != StatusPending && current != StatusCountered {
			return current, apperror.Conflictf("cannot accept a trade in status %s", current)
		}
		return StatusAgreed, nil
	case ActionReject:
		if role != SideCounterparty {
			return current, apperror.Forbiddenf("only the counterparty can reject")
		}
		if current != StatusPending && current != StatusCountered {
			return current, apperror.Conflictf("cannot reject a trade in status %s", current)
		}
		return StatusRejected, nil
	case ActionCancel:
		if role != SideInitiator {
			return current, apperror.Forbiddenf("only the initiator can cancel")
		}
		if current.Terminal() {
			return current, apperror.Conflictf("cannot cancel a trade in status %s", current)
		}
		return StatusCanceled, nil
	case ActionMessage:
		if current.Terminal() {
			return current, apperror.Conflictf("trade in status %s no longer accepts messages", current)
		}
		return current, nil
	default:
		return current, apperror.Validationf("unknown action %q", action)
	}
}

// AdvanceSettlement validates escrow bridge progress. The bridge may only
// move AGREED -> ESCROW_DEPLOYED -> DEPOSITED -> FINALIZED, strictly in
// order.
func AdvanceSettlement(current, target Status) error {
	steps := map[Status]Status{
		StatusAgreed:         StatusEscrowDeployed,
		StatusEscrowDeployed: StatusDeposited,
		StatusDeposited:      StatusFinalized,
	}
	next, ok := steps[current]
	if !ok || next != target {
		return apperror.Conflictf("settlement cannot move trade from %s to %s", current, target)
	}
	return nil
}
