package payment

import (
	"context"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// Order is the checkout summary a provider turns into a hosted payment page.
type Order struct {
	ID       string
	Store    string
	Items    []store.CartItem
	Total    float64
	Currency string
}

// LinkGenerator produces a hosted payment URL for a checked-out cart.
// The dialogue engine composes a placeholder link; the serving layer swaps it
// for whatever the generator returns.
type LinkGenerator interface {
	PaymentLink(ctx context.Context, order Order) (string, error)
}

// NoopGenerator keeps the engine's placeholder link. Used in tests and when no
// payment gateway is configured.
type NoopGenerator struct{}

func (NoopGenerator) PaymentLink(ctx context.Context, order Order) (string, error) {
	return "", nil
}
