// Package catalog models the read-only item-catalog this service joins
// against for display. Catalog management is external.
package catalog

import (
	"time"
)

// Collection groups assets for display.
type Collection struct {
	ID       int64   `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// Asset is the catalog record for one NFT.
type Asset struct {
	ID             int64       `json:"id"`
	NFTID          string      `json:"nftId"`
	ContractAddr   string      `json:"contractAddress"`
	TokenID        string      `json:"tokenId"`
	Name           string      `json:"name"`
	ImageURL       *string     `json:"imageUrl,omitempty"`
	EstimatedValue float64     `json:"estimatedValue"`
	Collection     *Collection `json:"collection,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
