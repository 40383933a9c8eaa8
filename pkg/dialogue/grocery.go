package dialogue

import (
	"fmt"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// Grocery lists are a monotonic step function of the budget: everyone gets the
// base staples, R500 unlocks the extra tier, R800 the premium tier. No
// interpolation and no per-item quantity scaling.
const (
	extraTierBudget   = 500
	premiumTierBudget = 800
)

var baseGroceryItems = []store.GroceryItem{
	{Name: "Milk (2L)", Category: "Dairy", Price: 32, Store: "Checkers"},
	{Name: "Bread (White)", Category: "Bakery", Price: 18, Store: "PnP"},
	{Name: "Eggs (18 pack)", Category: "Dairy", Price: 65, Store: "Checkers"},
	{Name: "Chicken Breast (1kg)", Category: "Meat", Price: 120, Store: "Checkers"},
	{Name: "Rice (2kg)", Category: "Pantry", Price: 45, Store: "PnP"},
	{Name: "Potatoes (2kg)", Category: "Vegetables", Price: 35, Store: "Checkers"},
	{Name: "Onions (1kg)", Category: "Vegetables", Price: 25, Store: "PnP"},
	{Name: "Cooking Oil (2L)", Category: "Pantry", Price: 85, Store: "Checkers"},
}

var extraGroceryItems = []store.GroceryItem{
	{Name: "Beef Mince (500g)", Category: "Meat", Price: 75, Store: "PnP"},
	{Name: "Pasta (500g)", Category: "Pantry", Price: 28, Store: "Checkers"},
	{Name: "Tomato Sauce (700g)", Category: "Pantry", Price: 35, Store: "PnP"},
	{Name: "Cheese (400g)", Category: "Dairy", Price: 85, Store: "Checkers"},
	{Name: "Yoghurt (6 pack)", Category: "Dairy", Price: 45, Store: "PnP"},
	{Name: "Apples (1.5kg)", Category: "Fruit", Price: 40, Store: "Checkers"},
	{Name: "Bananas (1kg)", Category: "Fruit", Price: 25, Store: "PnP"},
	{Name: "Carrots (1kg)", Category: "Vegetables", Price: 22, Store: "Checkers"},
}

var premiumGroceryItems = []store.GroceryItem{
	{Name: "Lamb Chops (500g)", Category: "Meat", Price: 110, Store: "Woolworths"},
	{Name: "Salmon (250g)", Category: "Seafood", Price: 95, Store: "Woolworths"},
	{Name: "Fresh Herbs Bundle", Category: "Vegetables", Price: 35, Store: "Woolworths"},
	{Name: "Butter (500g)", Category: "Dairy", Price: 75, Store: "PnP"},
}

// groceryItemsForBudget returns the included tiers for a budget, in catalog
// order.
func groceryItemsForBudget(budget float64) []store.GroceryItem {
	items := append([]store.GroceryItem(nil), baseGroceryItems...)
	if budget >= extraTierBudget {
		items = append(items, extraGroceryItems...)
	}
	if budget >= premiumTierBudget {
		items = append(items, premiumGroceryItems...)
	}
	return items
}

// buildGroceryPayload groups items by category in first-occurrence order and
// annotates the budget comparison.
func buildGroceryPayload(items []store.GroceryItem, budget float64) *store.GroceryListPayload {
	var (
		order  []string
		groups = map[string]*store.GroceryGroup{}
		total  float64
	)

	for _, item := range items {
		total += item.Price
		g, ok := groups[item.Category]
		if !ok {
			g = &store.GroceryGroup{Category: item.Category}
			groups[item.Category] = g
			order = append(order, item.Category)
		}
		g.Items = append(g.Items, item)
	}

	payload := &store.GroceryListPayload{
		Total:       total,
		Budget:      budget,
		UnderBudget: total <= budget,
		Difference:  budget - total,
	}
	for _, category := range order {
		payload.Groups = append(payload.Groups, *groups[category])
	}
	return payload
}

func (e *Engine) handleGroceryPlanning(s *store.Session, input string, tc *turnClock) {
	budget, ok := extractGroceryBudget(input)
	if !ok {
		// Deliberate policy: numbers under the threshold are assumed to be
		// quantities, so ask rather than guess.
		s.Messages = append(s.Messages, e.compose.text(tc.at(300),
			"I can help with groceries! What's your budget for this run? (e.g., 'R500' or 'R1000')"))
		return
	}

	items := groceryItemsForBudget(budget)
	payload := buildGroceryPayload(items, budget)

	verdict := fmt.Sprintf("R%s under budget!", formatAmount(payload.Difference))
	if !payload.UnderBudget {
		verdict = fmt.Sprintf("Slightly over budget (R%s).", formatAmount(-payload.Difference))
	}

	s.Messages = append(s.Messages, e.compose.groceryList(tc.at(500),
		fmt.Sprintf("Here's your weekly grocery list for R%s:\n\n**%d items - Total: R%s** %s",
			formatAmount(budget), len(items), formatAmount(payload.Total), verdict),
		payload))
}
