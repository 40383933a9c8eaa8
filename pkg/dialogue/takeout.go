package dialogue

import (
	"fmt"
	"math"
	"strings"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// Craving categories, checked in priority order against the lower-cased input.
var cravingCategories = []string{"burger", "pizza", "chicken"}

// takeoutTier parameterizes one synthetic offer: price is the fixed reference
// clamped by a budget-derived ceiling, so the carousel shows variety around
// the stated budget rather than real marketplace hits.
type takeoutTier struct {
	id           string
	label        string
	store        string
	reference    float64
	budgetOffset float64
	eta          string
}

var takeoutTiers = []takeoutTier{
	{id: "p1", label: "Classic", store: "Uber Eats", reference: 85, budgetOffset: -10, eta: "25m"},
	{id: "p2", label: "Premium", store: "Mr D", reference: 95, budgetOffset: 0, eta: "30m"},
	{id: "p3", label: "Budget", store: "Checkers", reference: 45, budgetOffset: -20, eta: "45m"},
	{id: "p4", label: "Gourmet", store: "Pick n Pay", reference: 110, budgetOffset: 10, eta: "35m"},
	{id: "p5", label: "Family", store: "Uber Eats", reference: 140, budgetOffset: 30, eta: "40m"},
	{id: "p6", label: "Combo", store: "Mr D", reference: 120, budgetOffset: 20, eta: "30m"},
}

func resolveCravingCategory(lower string) string {
	for _, category := range cravingCategories {
		if strings.Contains(lower, category) {
			return category
		}
	}
	return "food"
}

func takeoutOffers(category string, budget float64) []store.Product {
	display := strings.ToUpper(category[:1]) + category[1:]
	offers := make([]store.Product, len(takeoutTiers))
	for i, tier := range takeoutTiers {
		offers[i] = store.Product{
			ID:       tier.id,
			Name:     fmt.Sprintf("%s %s", tier.label, display),
			Store:    tier.store,
			Price:    math.Min(tier.reference, budget+tier.budgetOffset),
			ETA:      tier.eta,
			Category: category,
		}
	}
	return offers
}

func (e *Engine) handleTakeoutCraving(s *store.Session, input, lower string, tc *turnClock) {
	category := resolveCravingCategory(lower)
	budget := extractTakeoutBudget(input)

	s.Messages = append(s.Messages, e.compose.productList(tc.at(500),
		fmt.Sprintf("Found %s options under R%s! Swipe to see all.", category, formatAmount(budget)),
		category,
		takeoutOffers(category, budget)))
}
