package trade

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/trade-hub/trade-hub/internal/apperror"
)

// Item is one component of a trade offer: an NFT, a fungible token amount,
// or both. Items are immutable once written; a counteroffer produces a new
// revision of the whole set.
type Item struct {
	ID           int64           `json:"id"`
	ItemID       uuid.UUID       `json:"itemId"`
	TradeID      uuid.UUID       `json:"tradeId"`
	Side         Side            `json:"side"`
	NFTID        *string         `json:"nftId,omitempty"`
	TokenAmount  float64         `json:"tokenAmount"`
	TokenAddress *string         `json:"tokenAddress,omitempty"`
	Value        float64         `json:"value"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Revision     int             `json:"revision"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ItemSet is the full set of items offered by both sides at one revision.
type ItemSet []Item

// BySide returns the items offered by one party.
func (s ItemSet) BySide(side Side) ItemSet {
	out := make(ItemSet, 0, len(s))
	for _, it := range s {
		if it.Side == side {
			out = append(out, it)
		}
	}
	return out
}

// Clone returns a deep copy of the set.
func (s ItemSet) Clone() ItemSet {
	out := make(ItemSet, len(s))
	copy(out, s)
	for i := range out {
		if len(s[i].Metadata) > 0 {
			out[i].Metadata = append(json.RawMessage(nil), s[i].Metadata...)
		}
	}
	return out
}

// Validate checks the structural invariants of a submitted item set: at least
// one item, a known side per item, and each item carrying an NFT identity
// and/or a positive token component.
func (s ItemSet) Validate() error {
	if len(s) == 0 {
		return apperror.Validationf("items are required")
	}
	for i, it := range s {
		if it.Side != SideInitiator && it.Side != SideCounterparty {
			return apperror.Validationf("items[%d]: invalid side %q", i, it.Side)
		}
		hasNFT := it.NFTID != nil && *it.NFTID != ""
		hasToken := it.TokenAmount > 0
		if !hasNFT && !hasToken {
			return apperror.Validationf("items[%d]: an nftId or a positive tokenAmount is required", i)
		}
		if it.TokenAmount < 0 {
			return apperror.Validationf("items[%d]: tokenAmount cannot be negative", i)
		}
		if hasToken && !hasNFT && (it.TokenAddress == nil || *it.TokenAddress == "") {
			return apperror.Validationf("items[%d]: tokenAddress is required for a token component", i)
		}
	}
	return nil
}

// Diff preserves the before/after item sets of a counteroffer so the full
// exchange survives independently of the revision rows.
type Diff struct {
	Previous ItemSet `json:"previousItems"`
	Next     ItemSet `json:"newItems"`
}

// Marshal encodes the diff as history entry metadata.
func (d Diff) Marshal() (json.RawMessage, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, apperror.Internal("failed to encode item diff", err)
	}
	return b, nil
}
