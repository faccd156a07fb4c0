package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trade-hub/trade-hub/internal/domain/ledger"
)

// MessageRepository implements ledger.MessageRepository.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Append(ctx context.Context, m *ledger.Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO trade_messages
		(message_id, trade_id, user_id, body, message_type, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, m.MessageID, m.TradeID, m.UserID, m.Body, m.MessageType, m.Metadata, m.CreatedAt)
	return err
}

func (r *MessageRepository) ListByTrade(ctx context.Context, tradeID uuid.UUID) ([]*ledger.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, message_id, trade_id, user_id, body, message_type, metadata, created_at
		FROM trade_messages WHERE trade_id=$1 ORDER BY created_at ASC, id ASC
	`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var messages []*ledger.Message
	for rows.Next() {
		var m ledger.Message
		if err := rows.Scan(&m.ID, &m.MessageID, &m.TradeID, &m.UserID, &m.Body, &m.MessageType, &m.Metadata, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// HistoryRepository implements ledger.HistoryRepository.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) ListByTrade(ctx context.Context, tradeID uuid.UUID) ([]*ledger.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_id, trade_id, user_id, action, old_status, new_status, metadata, created_at
		FROM trade_history WHERE trade_id=$1 ORDER BY created_at ASC, id ASC
	`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*ledger.HistoryEntry
	for rows.Next() {
		var h ledger.HistoryEntry
		if err := rows.Scan(&h.ID, &h.EntryID, &h.TradeID, &h.UserID, &h.Action, &h.OldStatus, &h.NewStatus, &h.Metadata, &h.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &h)
	}
	return entries, rows.Err()
}
