package catalog

import "context"

// StoreInfo identifies a supported store. The dialogue engine renders these in
// the connect-accounts grid; adapters implement the search side.
type StoreInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Offer is a single search hit from a store's catalog.
type Offer struct {
	StoreKey   string  `json:"store_key"`
	Store      string  `json:"store"`
	ExternalID string  `json:"external_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Size       string  `json:"size,omitempty"`
	ETA        string  `json:"eta,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// StoreAdapter is the catalog provider contract. Implementations may call a
// store API or a scraper; the dialogue core only ever consumes this interface.
type StoreAdapter interface {
	Info() StoreInfo

	// Search returns candidate offers for a term. Offers priced above maxPrice
	// are excluded; maxPrice <= 0 means no ceiling.
	Search(ctx context.Context, term string, maxPrice float64) ([]Offer, error)
}
