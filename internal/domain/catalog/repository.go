package catalog

import "context"

// Repository defines read access to the item catalog. A missing asset yields
// a nil entry, not an error; display joins tolerate catalog gaps.
type Repository interface {
	GetByNFTID(ctx context.Context, nftID string) (*Asset, error)
	GetByNFTIDs(ctx context.Context, nftIDs []string) (map[string]*Asset, error)
}
