// Package settlement ingests asynchronous escrow bridge events and advances
// agreed trades through the on-chain phases. The engine must stay correct if
// no event ever arrives.
package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trade-hub/trade-hub/internal/apperror"
	"github.com/trade-hub/trade-hub/internal/domain/escrow"
	"github.com/trade-hub/trade-hub/internal/domain/ledger"
	"github.com/trade-hub/trade-hub/internal/domain/notification"
	"github.com/trade-hub/trade-hub/internal/domain/trade"
	"github.com/trade-hub/trade-hub/internal/domain/user"
)

// Service applies bridge events to trades.
type Service struct {
	trades trade.Repository
	users  user.Repository
	hub    notification.Hub
	logger zerolog.Logger
}

// NewService creates a settlement service.
func NewService(trades trade.Repository, users user.Repository, hub notification.Hub, logger zerolog.Logger) *Service {
	return &Service{
		trades: trades,
		users:  users,
		hub:    hub,
		logger: logger.With().Str("service", "settlement").Logger(),
	}
}

// HandleEvent validates and applies one settlement event. Out-of-order
// phases and events on settled trades are StateConflict; a FAILED report
// cancels the trade before it finalizes.
func (s *Service) HandleEvent(ctx context.Context, ev escrow.Event) (*trade.Trade, error) {
	t, err := s.trades.GetByID(ctx, ev.TradeID)
	if err != nil {
		return nil, apperror.Internal("failed to load trade", err)
	}
	if t == nil {
		return nil, apperror.NotFoundf("trade not found: %s", ev.TradeID)
	}

	now := time.Now().UTC()
	updated := *t
	updated.UpdatedAt = now

	switch ev.Phase {
	case escrow.PhaseDeployed:
		if err := trade.AdvanceSettlement(t.Status, trade.StatusEscrowDeployed); err != nil {
			return nil, err
		}
		if ev.EscrowAddress == nil || *ev.EscrowAddress == "" {
			return nil, apperror.Validationf("escrowAddress is required for a DEPLOYED event")
		}
		updated.Status = trade.StatusEscrowDeployed
		updated.EscrowAddress = ev.EscrowAddress
	case escrow.PhaseDeposited:
		if err := trade.AdvanceSettlement(t.Status, trade.StatusDeposited); err != nil {
			return nil, err
		}
		updated.Status = trade.StatusDeposited
	case escrow.PhaseFinalized:
		if err := trade.AdvanceSettlement(t.Status, trade.StatusFinalized); err != nil {
			return nil, err
		}
		updated.Status = trade.StatusFinalized
		updated.FinalizedAt = &now
	case escrow.PhaseFailed:
		if t.Status.Terminal() {
			return nil, apperror.Conflictf("trade in status %s cannot fail settlement", t.Status)
		}
		updated.Status = trade.StatusCanceled
		updated.CanceledAt = &now
	default:
		return nil, apperror.Validationf("unknown settlement phase %q", ev.Phase)
	}

	meta, err := json.Marshal(map[string]interface{}{
		"txHash": ev.TxHash,
		"reason": ev.Reason,
	})
	if err != nil {
		return nil, apperror.Internal("failed to encode settlement metadata", err)
	}
	commit := trade.TransitionCommit{
		Trade:           &updated,
		ExpectedVersion: t.Version,
		History: &ledger.HistoryEntry{
			EntryID:   uuid.New(),
			TradeID:   t.TradeID,
			UserID:    uuid.Nil,
			Action:    "escrow_" + strings.ToLower(string(ev.Phase)),
			OldStatus: string(t.Status),
			NewStatus: string(updated.Status),
			Metadata:  meta,
			CreatedAt: now,
		},
	}
	if err := s.trades.CommitTransition(ctx, commit); err != nil {
		if errors.Is(err, trade.ErrVersionConflict) {
			return nil, apperror.Conflictf("trade was modified concurrently, redeliver the event")
		}
		return nil, apperror.Internal("failed to commit settlement transition", err)
	}

	s.logger.Info().
		Str("tradeId", t.TradeID.String()).
		Str("phase", string(ev.Phase)).
		Str("oldStatus", string(t.Status)).
		Str("newStatus", string(updated.Status)).
		Msg("settlement event applied")

	s.notifyParties(ctx, &updated, ev.Phase)
	return &updated, nil
}

func (s *Service) notifyParties(ctx context.Context, t *trade.Trade, phase escrow.Phase) {
	users, err := s.users.GetByIDs(ctx, []uuid.UUID{t.InitiatorID, t.CounterpartyID})
	if err != nil {
		s.logger.Warn().Err(err).Str("tradeId", t.TradeID.String()).Msg("failed to resolve parties for notification")
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"tradeId": t.TradeID.String(),
		"status":  t.Status,
		"phase":   phase,
	})
	if err != nil {
		return
	}
	msg := notification.NewSSEMessage("settlement", payload)
	for _, u := range users {
		if u != nil {
			s.hub.BroadcastToWallet(u.WalletAddress, msg)
		}
	}
}
