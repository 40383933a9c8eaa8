package dialogue

import "github.com/Iamhamptom/foodfriend/pkg/store"

// Cart operations are total functions over the session value: they never fail
// and never partially apply.

// AddToCart appends one line to the session's cart. Re-adding the same product
// appends another quantity-1 line rather than bumping an existing one.
func AddToCart(s *store.Session, item store.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	s.Cart = append(s.Cart, item)
}

// AddAllToCart appends every item in the given order.
func AddAllToCart(s *store.Session, items []store.CartItem) {
	for _, item := range items {
		AddToCart(s, item)
	}
}

// CartTotal sums price times quantity across all lines.
func CartTotal(s *store.Session) float64 {
	var total float64
	for _, item := range s.Cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ClearCart drops every line. Called after a successful checkout handoff.
func ClearCart(s *store.Session) {
	s.Cart = []store.CartItem{}
}
