package postgres

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trade-hub/trade-hub/internal/domain/ledger"
	"github.com/trade-hub/trade-hub/internal/domain/trade"
)

// TradeRepository implements trade.Repository.
type TradeRepository struct {
	pool *pgxpool.Pool
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

const tradeColumns = `id, trade_id, status, initiator_id, counterparty_id, fairness_score, item_revision, version, escrow_address, created_at, updated_at, agreed_at, canceled_at, finalized_at`

func (r *TradeRepository) Create(ctx context.Context, t *trade.Trade, items trade.ItemSet, initial *ledger.Message) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO trades
		(trade_id, status, initiator_id, counterparty_id, fairness_score, item_revision, version, escrow_address, created_at, updated_at, agreed_at, canceled_at, finalized_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, t.TradeID, t.Status, t.InitiatorID, t.CounterpartyID, t.FairnessScore, t.ItemRevision, t.Version, t.EscrowAddress, t.CreatedAt, t.UpdatedAt, t.AgreedAt, t.CanceledAt, t.FinalizedAt)
	if err != nil {
		return err
	}
	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}
	if initial != nil {
		if err := insertMessage(ctx, tx, initial); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TradeRepository) GetByID(ctx context.Context, tradeID uuid.UUID) (*trade.Trade, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id=$1`, tradeID)
	return scanTrade(row)
}

func (r *TradeRepository) GetItems(ctx context.Context, tradeID uuid.UUID, revision int) (trade.ItemSet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, trade_id, side, nft_id, token_amount, token_address, value, metadata, revision, created_at
		FROM trade_items WHERE trade_id=$1 AND revision=$2 ORDER BY id ASC
	`, tradeID, revision)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items trade.ItemSet
	for rows.Next() {
		var it trade.Item
		if err := rows.Scan(&it.ID, &it.ItemID, &it.TradeID, &it.Side, &it.NFTID, &it.TokenAmount, &it.TokenAddress, &it.Value, &it.Metadata, &it.Revision, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *TradeRepository) List(ctx context.Context, filter trade.Filter, limit, offset int) ([]*trade.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades`
	args := []interface{}{}
	idx := 1
	where := ""
	if filter.Party != nil {
		where = " WHERE (initiator_id=$" + strconv.Itoa(idx) + " OR counterparty_id=$" + strconv.Itoa(idx) + ")"
		args = append(args, *filter.Party)
		idx++
	}
	if filter.Status != nil {
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}
		where += " status=$" + strconv.Itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	query += where + " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trades []*trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// CommitTransition applies a negotiation or settlement commit as one
// transaction. The trade row update is guarded by the version observed at the
// validation read; a stale version aborts the whole unit with
// trade.ErrVersionConflict.
func (r *TradeRepository) CommitTransition(ctx context.Context, commit trade.TransitionCommit) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t := commit.Trade
	tag, err := tx.Exec(ctx, `
		UPDATE trades
		SET status=$1, fairness_score=$2, item_revision=$3, escrow_address=$4, updated_at=$5, agreed_at=$6, canceled_at=$7, finalized_at=$8, version=version+1
		WHERE trade_id=$9 AND version=$10
	`, t.Status, t.FairnessScore, t.ItemRevision, t.EscrowAddress, t.UpdatedAt, t.AgreedAt, t.CanceledAt, t.FinalizedAt, t.TradeID, commit.ExpectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return trade.ErrVersionConflict
	}
	if err := insertItems(ctx, tx, commit.Items); err != nil {
		return err
	}
	if commit.History != nil {
		h := commit.History
		_, err = tx.Exec(ctx, `
			INSERT INTO trade_history
			(entry_id, trade_id, user_id, action, old_status, new_status, metadata, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, h.EntryID, h.TradeID, h.UserID, h.Action, h.OldStatus, h.NewStatus, h.Metadata, h.CreatedAt)
		if err != nil {
			return err
		}
	}
	if commit.Message != nil {
		if err := insertMessage(ctx, tx, commit.Message); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, items trade.ItemSet) error {
	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO trade_items
			(item_id, trade_id, side, nft_id, token_amount, token_address, value, metadata, revision, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, it.ItemID, it.TradeID, it.Side, it.NFTID, it.TokenAmount, it.TokenAddress, it.Value, it.Metadata, it.Revision, it.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertMessage(ctx context.Context, tx pgx.Tx, m *ledger.Message) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO trade_messages
		(message_id, trade_id, user_id, body, message_type, metadata, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, m.MessageID, m.TradeID, m.UserID, m.Body, m.MessageType, m.Metadata, m.CreatedAt)
	return err
}

func scanTrade(row pgx.Row) (*trade.Trade, error) {
	var t trade.Trade
	if err := row.Scan(&t.ID, &t.TradeID, &t.Status, &t.InitiatorID, &t.CounterpartyID, &t.FairnessScore, &t.ItemRevision, &t.Version, &t.EscrowAddress, &t.CreatedAt, &t.UpdatedAt, &t.AgreedAt, &t.CanceledAt, &t.FinalizedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
