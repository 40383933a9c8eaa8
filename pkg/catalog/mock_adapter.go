package catalog

import (
	"context"
	"fmt"
	"math"
)

// MockStoreAdapter answers searches with deterministic synthetic offers. Each
// store carries a price multiplier so cross-store comparisons stay meaningful
// without live scraping.
type MockStoreAdapter struct {
	info       StoreInfo
	multiplier float64
}

var _ StoreAdapter = &MockStoreAdapter{}

func NewMockStoreAdapter(key, name string, multiplier float64) *MockStoreAdapter {
	if multiplier <= 0 {
		multiplier = 1.0
	}
	return &MockStoreAdapter{
		info:       StoreInfo{Key: key, Name: name},
		multiplier: multiplier,
	}
}

func (a *MockStoreAdapter) Info() StoreInfo {
	return a.info
}

func (a *MockStoreAdapter) Search(ctx context.Context, term string, maxPrice float64) ([]Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := []Offer{
		{
			StoreKey:   a.info.Key,
			Store:      a.info.Name,
			ExternalID: fmt.Sprintf("%s-1", a.info.Key),
			Name:       fmt.Sprintf("%s (Generic Brand)", term),
			Price:      math.Round(25 * a.multiplier),
			Currency:   "ZAR",
			Size:       "1kg",
		},
		{
			StoreKey:   a.info.Key,
			Store:      a.info.Name,
			ExternalID: fmt.Sprintf("%s-2", a.info.Key),
			Name:       fmt.Sprintf("Premium %s", term),
			Price:      math.Round(45 * a.multiplier),
			Currency:   "ZAR",
			Size:       "500g",
		},
	}

	offers := make([]Offer, 0, len(candidates))
	for _, offer := range candidates {
		if maxPrice > 0 && offer.Price > maxPrice {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
