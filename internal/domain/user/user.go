// Package user models the wallet-keyed user directory this service consumes.
// Authentication itself is external; the engine only resolves wallet
// addresses to identities.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a directory entry for a trading party.
type User struct {
	ID            int64     `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	WalletAddress string    `json:"walletAddress"`
	Username      string    `json:"username"`
	AvatarURL     *string   `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NormalizeWallet canonicalizes a wallet address for lookups.
func NormalizeWallet(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
