package shoppinglist

import (
	"context"
	"testing"

	"github.com/Iamhamptom/foodfriend/pkg/catalog"
)

func TestPricePicksCheapestStore(t *testing.T) {
	p := NewPricer(catalog.NewRegistry())

	result, err := p.Price(context.Background(), []string{"Milk", "Bread"}, 0)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	for _, item := range result.Items {
		if !item.Found {
			t.Errorf("%s not found", item.Name)
		}
		// Checkers has multiplier 1.0, always the cheapest in the default set.
		if item.StoreKey != "checkers" {
			t.Errorf("%s priced at %s, want checkers", item.Name, item.StoreKey)
		}
		if item.Price != 25 {
			t.Errorf("%s price = %v, want 25", item.Name, item.Price)
		}
	}
	if result.Total != 50 {
		t.Errorf("total = %v, want 50", result.Total)
	}
}

func TestPriceKeepsUnfoundItems(t *testing.T) {
	p := NewPricer(catalog.NewRegistry())

	// Ceiling below every offer: item stays in the result but unfound.
	result, err := p.Price(context.Background(), []string{"Truffles"}, 10)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	if result.Items[0].Found {
		t.Error("expected Found=false under a 10 rand ceiling")
	}
	if result.Total != 0 {
		t.Errorf("total = %v, want 0", result.Total)
	}
}

func TestPriceHonorsContextCancellation(t *testing.T) {
	p := NewPricer(catalog.NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Price(ctx, []string{"Milk"}, 0); err == nil {
		t.Fatal("expected context error")
	}
}
