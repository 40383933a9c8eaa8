package shoppinglist

import (
	"context"
	"fmt"

	"github.com/Iamhamptom/foodfriend/pkg/catalog"
)

// PricedItem is one shopping-list line with the cheapest offer found for it.
type PricedItem struct {
	Name     string  `json:"name"`
	Store    string  `json:"store"`
	StoreKey string  `json:"store_key"`
	Price    float64 `json:"price"`
	Found    bool    `json:"found"`
}

// Result is a fully priced shopping list.
type Result struct {
	Items []PricedItem `json:"items"`
	Total float64      `json:"total"`
}

// Pricer shops a list of item names across every searchable store and keeps
// the cheapest offer per line.
type Pricer struct {
	registry *catalog.Registry
}

func NewPricer(registry *catalog.Registry) *Pricer {
	return &Pricer{registry: registry}
}

// Price looks each item up at every store adapter. Items with no offer under
// maxPricePerItem are kept with Found=false so the caller can surface them.
func (p *Pricer) Price(ctx context.Context, items []string, maxPricePerItem float64) (*Result, error) {
	result := &Result{Items: make([]PricedItem, 0, len(items))}

	for _, name := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		best, found, err := p.cheapestOffer(ctx, name, maxPricePerItem)
		if err != nil {
			return nil, fmt.Errorf("pricing %q: %w", name, err)
		}

		line := PricedItem{Name: name, Found: found}
		if found {
			line.Store = best.Store
			line.StoreKey = best.StoreKey
			line.Price = best.Price
			result.Total += best.Price
		}
		result.Items = append(result.Items, line)
	}

	return result, nil
}

func (p *Pricer) cheapestOffer(ctx context.Context, term string, maxPrice float64) (catalog.Offer, bool, error) {
	var best catalog.Offer
	found := false

	for _, adapter := range p.registry.Adapters() {
		offers, err := adapter.Search(ctx, term, maxPrice)
		if err != nil {
			return catalog.Offer{}, false, err
		}
		for _, offer := range offers {
			if !found || offer.Price < best.Price {
				best = offer
				found = true
			}
		}
	}

	return best, found, nil
}
