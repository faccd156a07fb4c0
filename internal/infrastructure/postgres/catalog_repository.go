package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trade-hub/trade-hub/internal/domain/catalog"
)

// CatalogRepository implements catalog.Repository against the read-only
// catalog tables.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const assetQuery = `
	SELECT a.id, a.nft_id, a.contract_address, a.token_id, a.name, a.image_url, a.estimated_value, a.created_at, a.updated_at,
	       c.id, c.slug, c.name, c.image_url
	FROM assets a
	LEFT JOIN collections c ON c.id = a.collection_id
`

func (r *CatalogRepository) GetByNFTID(ctx context.Context, nftID string) (*catalog.Asset, error) {
	row := r.pool.QueryRow(ctx, assetQuery+` WHERE a.nft_id=$1`, nftID)
	a, err := scanAsset(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *CatalogRepository) GetByNFTIDs(ctx context.Context, nftIDs []string) (map[string]*catalog.Asset, error) {
	rows, err := r.pool.Query(ctx, assetQuery+` WHERE a.nft_id = ANY($1)`, nftIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assets := make(map[string]*catalog.Asset)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets[a.NFTID] = a
	}
	return assets, rows.Err()
}

func scanAsset(row pgx.Row) (*catalog.Asset, error) {
	var a catalog.Asset
	var colID *int64
	var colSlug, colName *string
	var colImage *string
	if err := row.Scan(&a.ID, &a.NFTID, &a.ContractAddr, &a.TokenID, &a.Name, &a.ImageURL, &a.EstimatedValue, &a.CreatedAt, &a.UpdatedAt, &colID, &colSlug, &colName, &colImage); err != nil {
		return nil, err
	}
	if colID != nil {
		a.Collection = &catalog.Collection{ID: *colID, Slug: *colSlug, Name: *colName, ImageURL: colImage}
	}
	return &a, nil
}
