package dialogue

import (
	"fmt"
	"strings"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

var groceryKeywords = []string{"grocery", "groceries", "weekly", "shopping list"}

var cravingKeywords = []string{"burger", "pizza", "chicken", "food", "hungry", "eat"}

// intentRule pairs a matcher with its handler. Rules are evaluated strictly in
// slice order and the first match wins: action tokens (rules 1-5) must come
// before the keyword rules so that, for example, "add_all_groceries" is never
// misread as a grocery-planning request.
type intentRule struct {
	name    string
	matches func(input, lower string) bool
	handle  func(e *Engine, s *store.Session, input, lower string, tc *turnClock)
}

var intentRules = []intentRule{
	{
		name:    "add_to_cart",
		matches: func(input, _ string) bool { return strings.HasPrefix(input, "order_") },
		handle:  (*Engine).handleOrderToken,
	},
	{
		name:    "checkout",
		matches: func(_, lower string) bool { return lower == "checkout" },
		handle:  (*Engine).handleCheckout,
	},
	{
		name:    "resume_shopping",
		matches: func(_, lower string) bool { return lower == "continue" },
		handle: func(e *Engine, s *store.Session, _, _ string, tc *turnClock) {
			s.Messages = append(s.Messages, e.compose.text(tc.at(300),
				"Sure! What else would you like? You can search for food or ask for grocery suggestions."))
		},
	},
	{
		name:    "add_all_groceries",
		matches: func(_, lower string) bool { return lower == "add_all_groceries" },
		handle:  (*Engine).handleAddAllGroceries,
	},
	{
		name:    "modify_groceries",
		matches: func(_, lower string) bool { return lower == "modify_groceries" },
		handle: func(e *Engine, s *store.Session, _, _ string, tc *turnClock) {
			s.Messages = append(s.Messages, e.compose.text(tc.at(300),
				"What would you like to change? You can say things like 'remove chicken' or 'add tomatoes'."))
		},
	},
	{
		name:    "grocery_planning",
		matches: func(_, lower string) bool { return containsAny(lower, groceryKeywords) },
		handle: func(e *Engine, s *store.Session, input, _ string, tc *turnClock) {
			e.handleGroceryPlanning(s, input, tc)
		},
	},
	{
		name:    "takeout_craving",
		matches: func(_, lower string) bool { return containsAny(lower, cravingKeywords) },
		handle: func(e *Engine, s *store.Session, input, lower string, tc *turnClock) {
			e.handleTakeoutCraving(s, input, lower, tc)
		},
	},
	{
		name:    "fallback",
		matches: func(_, _ string) bool { return true },
		handle: func(e *Engine, s *store.Session, _, _ string, tc *turnClock) {
			s.Messages = append(s.Messages, e.compose.text(tc.at(300),
				"I can help with:\n- **Takeout**: 'I want a burger for R100'\n- **Groceries**: 'I need groceries for R500'\n- **Cart**: 'What's in my cart?'\n\nWhat would you like?"))
		},
	},
}

// handleReady classifies input against the rule table. READY never changes
// state; every outcome is a message, a cart mutation, or a silent no-op.
func (e *Engine) handleReady(s *store.Session, input string, tc *turnClock) {
	lower := strings.ToLower(input)
	for _, rule := range intentRules {
		if rule.matches(input, lower) {
			rule.handle(e, s, input, lower, tc)
			return
		}
	}
}

func (e *Engine) handleOrderToken(s *store.Session, input, _ string, tc *turnClock) {
	productID := strings.TrimPrefix(input, "order_")

	idx := s.LastIndexOfType(store.TypeProductList)
	if idx == -1 || s.Messages[idx].Data == nil || s.Messages[idx].Data.ProductList == nil {
		return // stale token, UI desync: silent no-op
	}

	var product *store.Product
	for i := range s.Messages[idx].Data.ProductList.Products {
		if s.Messages[idx].Data.ProductList.Products[i].ID == productID {
			product = &s.Messages[idx].Data.ProductList.Products[i]
			break
		}
	}
	if product == nil {
		return
	}

	AddToCart(s, store.CartItem{
		ID:       productID,
		Name:     product.Name,
		Store:    product.Store,
		Price:    product.Price,
		Quantity: 1,
	})

	total := CartTotal(s)
	s.Messages = append(s.Messages, e.compose.cartUpdate(tc.at(300),
		fmt.Sprintf("Added \"%s\" to your cart!\n\nCart total: R%s", product.Name, formatAmount(total)),
		s.Cart, total, product.Store))
}

func (e *Engine) handleCheckout(s *store.Session, _, _ string, tc *turnClock) {
	if len(s.Cart) == 0 {
		s.Messages = append(s.Messages, e.compose.text(tc.at(300),
			"Your cart is empty. Ask me for takeout or a grocery list first!"))
		return
	}

	// Total is computed before the cart is cleared so the summary survives.
	total := CartTotal(s)
	s.Messages = append(s.Messages, e.compose.checkoutSummary(tc.at(300), s.Cart, total))
	ClearCart(s)
}

func (e *Engine) handleAddAllGroceries(s *store.Session, _, _ string, tc *turnClock) {
	idx := s.LastIndexOfType(store.TypeGroceryList)
	if idx == -1 || s.Messages[idx].Data == nil || s.Messages[idx].Data.GroceryList == nil {
		return // nothing to add: silent no-op
	}

	items := s.Messages[idx].Data.GroceryList.FlatItems()
	lines := make([]store.CartItem, len(items))
	for i, item := range items {
		lines[i] = store.CartItem{
			ID:       e.compose.newID(),
			Name:     item.Name,
			Store:    item.Store,
			Price:    item.Price,
			Quantity: 1,
		}
	}
	AddAllToCart(s, lines)

	total := CartTotal(s)
	s.Messages = append(s.Messages, e.compose.cartUpdate(tc.at(300),
		fmt.Sprintf("Added %d items to your cart!\n\n**Cart total: R%s**", len(items), formatAmount(total)),
		s.Cart, total, ""))
}

func containsAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
