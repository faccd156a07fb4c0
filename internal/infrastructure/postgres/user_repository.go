package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trade-hub/trade-hub/internal/domain/user"
)

// UserRepository implements user.Repository against the synced directory
// table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, user_id, wallet_address, username, avatar_url, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id=$1`, userID)
	return scanUser(row)
}

func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE wallet_address=$1`, walletAddress)
	return scanUser(row)
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make(map[uuid.UUID]*user.User)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[u.UserID] = u
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.UserID, &u.WalletAddress, &u.Username, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
