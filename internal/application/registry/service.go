// Package registry is the persistence facade for trades: creation plus the
// two read shapes the engine needs. The display read expands parties, catalog
// assets, messages and history for responses; the validation read returns
// only what a mutating action must check, so it is never staled by eager
// display joins.
package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trade-hub/trade-hub/internal/apperror"
	"github.com/trade-hub/trade-hub/internal/domain/catalog"
	"github.com/trade-hub/trade-hub/internal/domain/ledger"
	"github.com/trade-hub/trade-hub/internal/domain/trade"
	"github.com/trade-hub/trade-hub/internal/domain/user"
)

// Service exposes trade persistence to the rest of the application.
type Service struct {
	trades   trade.Repository
	users    user.Repository
	assets   catalog.Repository
	messages ledger.MessageRepository
	history  ledger.HistoryRepository
	logger   zerolog.Logger
}

// NewService creates a registry service.
func NewService(
	trades trade.Repository,
	users user.Repository,
	assets catalog.Repository,
	messages ledger.MessageRepository,
	history ledger.HistoryRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		trades:   trades,
		users:    users,
		assets:   assets,
		messages: messages,
		history:  history,
		logger:   logger.With().Str("service", "registry").Logger(),
	}
}

// ItemInput is one submitted item of an offer or counteroffer.
type ItemInput struct {
	Side         string          `json:"side"`
	NFTID        *string         `json:"nftId,omitempty"`
	TokenAmount  float64         `json:"tokenAmount"`
	TokenAddress *string         `json:"tokenAddress,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

// CreateInput carries everything needed to open a trade.
type CreateInput struct {
	InitiatorAddress    string      `json:"initiatorAddress"`
	CounterpartyAddress string      `json:"counterpartyAddress"`
	Items               []ItemInput `json:"items"`
	Message             string      `json:"message,omitempty"`
}

// ItemView is an item joined with its catalog asset for display.
type ItemView struct {
	trade.Item
	Asset *catalog.Asset `json:"asset,omitempty"`
}

// View is the display aggregate returned by the HTTP surface.
type View struct {
	TradeID       uuid.UUID              `json:"id"`
	Status        trade.Status           `json:"status"`
	Initiator     *user.User             `json:"initiator"`
	Counterparty  *user.User             `json:"counterparty"`
	Items         []ItemView             `json:"items"`
	Messages      []*ledger.Message      `json:"messages"`
	History       []*ledger.HistoryEntry `json:"history,omitempty"`
	FairnessScore float64                `json:"fairnessScore"`
	EscrowAddress *string                `json:"escrowAddress,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	AgreedAt      *time.Time             `json:"agreedAt,omitempty"`
	CanceledAt    *time.Time             `json:"canceledAt,omitempty"`
	FinalizedAt   *time.Time             `json:"finalizedAt,omitempty"`
}

// assetSnapshot is the denormalized display data frozen onto an item row at
// offer time.
type assetSnapshot struct {
	Name       string  `json:"name"`
	ImageURL   *string `json:"imageUrl,omitempty"`
	Collection *string `json:"collection,omitempty"`
}

// Create opens a new PENDING trade with its initial item revision and an
// optional opening message, atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	if in.InitiatorAddress == "" || in.CounterpartyAddress == "" {
		return nil, apperror.Validationf("initiatorAddress and counterpartyAddress are required")
	}
	initiator, err := s.resolveWallet(ctx, in.InitiatorAddress)
	if err != nil {
		return nil, err
	}
	counterparty, err := s.resolveWallet(ctx, in.CounterpartyAddress)
	if err != nil {
		return nil, err
	}
	if initiator.UserID == counterparty.UserID {
		return nil, apperror.Validationf("initiator and counterparty must be different users")
	}

	now := time.Now().UTC()
	t := &trade.Trade{
		TradeID:        uuid.New(),
		Status:         trade.StatusPending,
		InitiatorID:    initiator.UserID,
		CounterpartyID: counterparty.UserID,
		ItemRevision:   1,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items, err := s.BuildItems(ctx, t.TradeID, 1, in.Items)
	if err != nil {
		return nil, err
	}
	t.FairnessScore = trade.Fairness(items)

	var opening *ledger.Message
	if in.Message != "" {
		opening = &ledger.Message{
			MessageID:   uuid.New(),
			TradeID:     t.TradeID,
			UserID:      initiator.UserID,
			Body:        in.Message,
			MessageType: ledger.MessageTypeText,
			CreatedAt:   now,
		}
	}

	if err := s.trades.Create(ctx, t, items, opening); err != nil {
		return nil, apperror.Internal("failed to create trade", err)
	}
	s.logger.Info().
		Str("tradeId", t.TradeID.String()).
		Str("initiator", initiator.WalletAddress).
		Str("counterparty", counterparty.WalletAddress).
		Int("items", len(items)).
		Msg("trade created")
	return s.GetForDisplay(ctx, t.TradeID)
}

// BuildItems turns submitted item inputs into a validated item revision,
// freezing catalog values and display metadata onto each row.
func (s *Service) BuildItems(ctx context.Context, tradeID uuid.UUID, revision int, inputs []ItemInput) (trade.ItemSet, error) {
	now := time.Now().UTC()
	items := make(trade.ItemSet, 0, len(inputs))
	for _, in := range inputs {
		it := trade.Item{
			ItemID:       uuid.New(),
			TradeID:      tradeID,
			Side:         trade.Side(in.Side),
			NFTID:        in.NFTID,
			TokenAmount:  in.TokenAmount,
			TokenAddress: in.TokenAddress,
			Metadata:     in.Metadata,
			Revision:     revision,
			CreatedAt:    now,
		}
		if in.NFTID != nil && *in.NFTID != "" {
			asset, err := s.assets.GetByNFTID(ctx, *in.NFTID)
			if err != nil {
				return nil, apperror.Internal("failed to resolve catalog asset", err)
			}
			if asset == nil {
				return nil, apperror.Validationf("unknown nftId %q", *in.NFTID)
			}
			it.Value = asset.EstimatedValue
			snap := assetSnapshot{Name: asset.Name, ImageURL: asset.ImageURL}
			if asset.Collection != nil {
				snap.Collection = &asset.Collection.Name
			}
			if b, err := json.Marshal(snap); err == nil {
				it.Metadata = b
			}
		}
		items = append(items, it)
	}
	if err := items.Validate(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetForValidation loads the minimal shape a mutating action checks: the
// trade row and its current item revision.
func (s *Service) GetForValidation(ctx context.Context, tradeID uuid.UUID) (*trade.Trade, trade.ItemSet, error) {
	t, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, nil, apperror.Internal("failed to load trade", err)
	}
	if t == nil {
		return nil, nil, apperror.NotFoundf("trade not found: %s", tradeID)
	}
	items, err := s.trades.GetItems(ctx, tradeID, t.ItemRevision)
	if err != nil {
		return nil, nil, apperror.Internal("failed to load trade items", err)
	}
	return t, items, nil
}

// GetForDisplay loads the fully expanded aggregate.
func (s *Service) GetForDisplay(ctx context.Context, tradeID uuid.UUID) (*View, error) {
	v, t, err := s.baseView(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	history, err := s.history.ListByTrade(ctx, tradeID)
	if err != nil {
		return nil, apperror.Internal("failed to load trade history", err)
	}
	v.History = history
	s.attachAuthors(ctx, t, v)
	return v, nil
}

// GetWithMessages loads the message-enriched shape without reloading
// history.
func (s *Service) GetWithMessages(ctx context.Context, tradeID uuid.UUID) (*View, error) {
	v, t, err := s.baseView(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, t, v)
	return v, nil
}

// List returns trades a wallet participates in.
func (s *Service) List(ctx context.Context, wallet *string, status *trade.Status, limit, offset int) ([]*trade.Trade, error) {
	filter := trade.Filter{Status: status}
	if wallet != nil {
		u, err := s.resolveWallet(ctx, *wallet)
		if err != nil {
			return nil, err
		}
		filter.Party = &u.UserID
	}
	trades, err := s.trades.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperror.Internal("failed to list trades", err)
	}
	return trades, nil
}

func (s *Service) baseView(ctx context.Context, tradeID uuid.UUID) (*View, *trade.Trade, error) {
	t, err := s.trades.GetByID(ctx, tradeID)
	if err != nil {
		return nil, nil, apperror.Internal("failed to load trade", err)
	}
	if t == nil {
		return nil, nil, apperror.NotFoundf("trade not found: %s", tradeID)
	}
	items, err := s.trades.GetItems(ctx, tradeID, t.ItemRevision)
	if err != nil {
		return nil, nil, apperror.Internal("failed to load trade items", err)
	}
	messages, err := s.messages.ListByTrade(ctx, tradeID)
	if err != nil {
		return nil, nil, apperror.Internal("failed to load trade messages", err)
	}

	v := &View{
		TradeID:       t.TradeID,
		Status:        t.Status,
		Items:         s.joinAssets(ctx, items),
		Messages:      messages,
		FairnessScore: t.FairnessScore,
		EscrowAddress: t.EscrowAddress,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		AgreedAt:      t.AgreedAt,
		CanceledAt:    t.CanceledAt,
		FinalizedAt:   t.FinalizedAt,
	}
	return v, t, nil
}

// joinAssets expands catalog data per item. Catalog gaps degrade to the
// frozen metadata snapshot instead of failing the read.
func (s *Service) joinAssets(ctx context.Context, items trade.ItemSet) []ItemView {
	nftIDs := make([]string, 0, len(items))
	for _, it := range items {
		if it.NFTID != nil && *it.NFTID != "" {
			nftIDs = append(nftIDs, *it.NFTID)
		}
	}
	assets := map[string]*catalog.Asset{}
	if len(nftIDs) > 0 {
		var err error
		assets, err = s.assets.GetByNFTIDs(ctx, nftIDs)
		if err != nil {
			s.logger.Warn().Err(err).Msg("catalog join failed, serving item snapshots")
			assets = map[string]*catalog.Asset{}
		}
	}
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		iv := ItemView{Item: it}
		if it.NFTID != nil {
			iv.Asset = assets[*it.NFTID]
		}
		views = append(views, iv)
	}
	return views
}

// attachAuthors expands party, message author and history actor identities.
func (s *Service) attachAuthors(ctx context.Context, t *trade.Trade, v *View) {
	ids := []uuid.UUID{t.InitiatorID, t.CounterpartyID}
	for _, m := range v.Messages {
		ids = append(ids, m.UserID)
	}
	for _, h := range v.History {
		if h.UserID != uuid.Nil {
			ids = append(ids, h.UserID)
		}
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Str("tradeId", t.TradeID.String()).Msg("user join failed, serving bare ids")
		return
	}
	v.Initiator = users[t.InitiatorID]
	v.Counterparty = users[t.CounterpartyID]
	for _, m := range v.Messages {
		m.Author = users[m.UserID]
	}
	for _, h := range v.History {
		h.Actor = users[h.UserID]
	}
}

func (s *Service) resolveWallet(ctx context.Context, addr string) (*user.User, error) {
	u, err := s.users.GetByWallet(ctx, user.NormalizeWallet(addr))
	if err != nil {
		return nil, apperror.Internal("failed to resolve wallet", err)
	}
	if u == nil {
		return nil, apperror.NotFoundf("no user for wallet %s", addr)
	}
	return u, nil
}
