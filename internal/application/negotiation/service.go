// Package negotiation orchestrates the trade state machine: it validates an
// incoming action against the actor's role and the trade's current status,
// snapshots item revisions, recomputes fairness, and commits status, items,
// history and message as one unit.
package negotiation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trade-hub/trade-hub/internal/apperror"
	"github.com/trade-hub/trade-hub/internal/application/registry"
	"github.com/trade-hub/trade-hub/internal/domain/escrow"
	"github.com/trade-hub/trade-hub/internal/domain/ledger"
	"github.com/trade-hub/trade-hub/internal/domain/notification"
	"github.com/trade-hub/trade-hub/internal/domain/trade"
	"github.com/trade-hub/trade-hub/internal/domain/user"
)

// Service handles negotiation actions.
type Service struct {
	trades   trade.Repository
	users    user.Repository
	registry *registry.Service
	bridge   escrow.Bridge
	hub      notification.Hub
	logger   zerolog.Logger
}

// NewService creates a negotiation service.
func NewService(
	trades trade.Repository,
	users user.Repository,
	reg *registry.Service,
	bridge escrow.Bridge,
	hub notification.Hub,
	logger zerolog.Logger,
) *Service {
	return &Service{
		trades:   trades,
		users:    users,
		registry: reg,
		bridge:   bridge,
		hub:      hub,
		logger:   logger.With().Str("service", "negotiation").Logger(),
	}
}

// ActionRequest is the payload of a submitted negotiation action.
type ActionRequest struct {
	Action      string               `json:"action"`
	UserAddress string               `json:"userAddress"`
	Items       []registry.ItemInput `json:"items,omitempty"`
	Message     string               `json:"message,omitempty"`
	Metadata    json.RawMessage      `json:"metadata,omitempty"`
}

// Submit applies one action to a trade and returns the updated aggregate.
// Plain messages come back message-enriched without a history reload; every
// other action returns the display shape.
func (s *Service) Submit(ctx context.Context, tradeID uuid.UUID, req ActionRequest) (*registry.View, error) {
	action, err := trade.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}
	if req.UserAddress == "" {
		return nil, apperror.Validationf("userAddress is required")
	}
	actor, err := s.users.GetByWallet(ctx, user.NormalizeWallet(req.UserAddress))
	if err != nil {
		return nil, apperror.Internal("failed to resolve wallet", err)
	}
	if actor == nil {
		return nil, apperror.NotFoundf("no user for wallet %s", req.UserAddress)
	}

	t, items, err := s.registry.GetForValidation(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	role, ok := t.RoleOf(actor.UserID)
	if !ok {
		return nil, apperror.Forbiddenf("wallet %s is not a party to this trade", req.UserAddress)
	}
	next, err := trade.Transition(t.Status, action, role)
	if err != nil {
		return nil, err
	}

	if action == trade.ActionMessage {
		return s.appendMessage(ctx, t, actor, req)
	}

	now := time.Now().UTC()
	updated := *t
	updated.Status = next
	updated.UpdatedAt = now

	commit := trade.TransitionCommit{
		Trade:           &updated,
		ExpectedVersion: t.Version,
	}

	switch action {
	case trade.ActionCounteroffer:
		newItems, err := s.registry.BuildItems(ctx, tradeID, t.ItemRevision+1, req.Items)
		if err != nil {
			return nil, err
		}
		diff := trade.Diff{Previous: items.Clone(), Next: newItems}
		meta, err := diff.Marshal()
		if err != nil {
			return nil, err
		}
		updated.ItemRevision = t.ItemRevision + 1
		updated.FairnessScore = trade.Fairness(newItems)
		commit.Items = newItems
		commit.History = s.historyEntry(tradeID, actor.UserID, action, t.Status, next, now, meta)
		commit.Message = s.actionMessage(tradeID, actor.UserID, ledger.MessageTypeCounteroffer, req, "Counteroffer submitted", now)
	case trade.ActionAccept:
		updated.AgreedAt = &now
		commit.History = s.historyEntry(tradeID, actor.UserID, action, t.Status, next, now, nil)
		commit.Message = s.actionMessage(tradeID, actor.UserID, ledger.MessageTypeAcceptance, req, "Trade accepted", now)
	case trade.ActionReject:
		updated.CanceledAt = &now
		commit.History = s.historyEntry(tradeID, actor.UserID, action, t.Status, next, now, nil)
		commit.Message = s.actionMessage(tradeID, actor.UserID, ledger.MessageTypeRejection, req, "Trade rejected", now)
	case trade.ActionCancel:
		updated.CanceledAt = &now
		commit.History = s.historyEntry(tradeID, actor.UserID, action, t.Status, next, now, nil)
	}

	if err := s.trades.CommitTransition(ctx, commit); err != nil {
		if errors.Is(err, trade.ErrVersionConflict) {
			return nil, apperror.Conflictf("trade was modified concurrently, retry the action")
		}
		return nil, apperror.Internal("failed to commit trade transition", err)
	}

	s.logger.Info().
		Str("tradeId", tradeID.String()).
		Str("action", string(action)).
		Str("actor", actor.WalletAddress).
		Str("oldStatus", string(t.Status)).
		Str("newStatus", string(next)).
		Msg("trade transition committed")

	if action == trade.ActionAccept {
		s.requestEscrow(&updated)
	}
	s.notifyParties(ctx, &updated, string(action))

	return s.registry.GetForDisplay(ctx, tradeID)
}

// appendMessage handles the message action: a TEXT ledger append with no
// status change and no history entry. The append still goes through the
// version-guarded commit so a message racing a terminal transition loses
// instead of landing on a frozen trade.
func (s *Service) appendMessage(ctx context.Context, t *trade.Trade, actor *user.User, req ActionRequest) (*registry.View, error) {
	if req.Message == "" {
		return nil, apperror.Validationf("message text is required")
	}
	now := time.Now().UTC()
	updated := *t
	updated.UpdatedAt = now

	commit := trade.TransitionCommit{
		Trade:           &updated,
		ExpectedVersion: t.Version,
		Message: &ledger.Message{
			MessageID:   uuid.New(),
			TradeID:     t.TradeID,
			UserID:      actor.UserID,
			Body:        req.Message,
			MessageType: ledger.MessageTypeText,
			Metadata:    req.Metadata,
			CreatedAt:   now,
		},
	}
	if err := s.trades.CommitTransition(ctx, commit); err != nil {
		if errors.Is(err, trade.ErrVersionConflict) {
			return nil, apperror.Conflictf("trade was modified concurrently, retry the action")
		}
		return nil, apperror.Internal("failed to append message", err)
	}
	s.notifyParties(ctx, t, string(trade.ActionMessage))
	return s.registry.GetWithMessages(ctx, t.TradeID)
}

func (s *Service) historyEntry(tradeID, actorID uuid.UUID, action trade.Action, old, new trade.Status, at time.Time, metadata json.RawMessage) *ledger.HistoryEntry {
	return &ledger.HistoryEntry{
		EntryID:   uuid.New(),
		TradeID:   tradeID,
		UserID:    actorID,
		Action:    string(action),
		OldStatus: string(old),
		NewStatus: string(new),
		Metadata:  metadata,
		CreatedAt: at,
	}
}

// actionMessage builds the protocol-derived ledger message for a
// counteroffer, acceptance or rejection, using the supplied free text when
// present.
func (s *Service) actionMessage(tradeID, actorID uuid.UUID, mt ledger.MessageType, req ActionRequest, fallback string, at time.Time) *ledger.Message {
	body := req.Message
	if body == "" {
		body = fallback
	}
	return &ledger.Message{
		MessageID:   uuid.New(),
		TradeID:     tradeID,
		UserID:      actorID,
		Body:        body,
		MessageType: mt,
		Metadata:    req.Metadata,
		CreatedAt:   at,
	}
}

// requestEscrow hands an agreed trade to the bridge. Deployment runs
// detached; settlement progress comes back through bridge events, possibly
// never.
func (s *Service) requestEscrow(t *trade.Trade) {
	tradeID := t.TradeID
	initiatorID := t.InitiatorID
	counterpartyID := t.CounterpartyID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		users, err := s.users.GetByIDs(ctx, []uuid.UUID{initiatorID, counterpartyID})
		if err != nil {
			s.logger.Error().Err(err).Str("tradeId", tradeID.String()).Msg("failed to resolve party wallets for escrow deployment")
			return
		}
		req := escrow.DeployRequest{TradeID: tradeID}
		if u := users[initiatorID]; u != nil {
			req.InitiatorWallet = u.WalletAddress
		}
		if u := users[counterpartyID]; u != nil {
			req.CounterpartyWallet = u.WalletAddress
		}
		if err := s.bridge.RequestDeployment(ctx, req); err != nil {
			s.logger.Error().Err(err).Str("tradeId", tradeID.String()).Msg("escrow deployment request failed")
		}
	}()
}

func (s *Service) notifyParties(ctx context.Context, t *trade.Trade, event string) {
	users, err := s.users.GetByIDs(ctx, []uuid.UUID{t.InitiatorID, t.CounterpartyID})
	if err != nil {
		s.logger.Warn().Err(err).Str("tradeId", t.TradeID.String()).Msg("failed to resolve parties for notification")
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"tradeId": t.TradeID.String(),
		"status":  t.Status,
		"action":  event,
	})
	if err != nil {
		return
	}
	msg := notification.NewSSEMessage("trade", payload)
	for _, u := range users {
		if u != nil {
			s.hub.BroadcastToWallet(u.WalletAddress, msg)
		}
	}
}
