package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines lookup access to the user directory. A nil result with a
// nil error means the user does not exist.
type Repository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*User, error)
	GetByIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*User, error)
}
