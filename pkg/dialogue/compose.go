package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iamhamptom/foodfriend/pkg/catalog"
	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// composer builds the assistant's side of the transcript: canned text,
// quick-reply actions and the typed payload messages the renderer consumes.
type composer struct {
	newID func() string
}

func (c *composer) text(ts int64, content string, actions ...store.Action) store.Message {
	return store.Message{
		ID:        c.newID(),
		Role:      store.RoleAssistant,
		Content:   content,
		Type:      store.TypeText,
		Actions:   actions,
		Timestamp: ts,
	}
}

func (c *composer) storeGrid(ts int64, content string, grid []catalog.StoreInfo, profile *store.UserProfile, actions ...store.Action) store.Message {
	return store.Message{
		ID:        c.newID(),
		Role:      store.RoleAssistant,
		Content:   content,
		Type:      store.TypeStoreGrid,
		Data:      storeGridPayload(grid, profile),
		Actions:   actions,
		Timestamp: ts,
	}
}

func (c *composer) productList(ts int64, content, query string, products []store.Product) store.Message {
	return store.Message{
		ID:      c.newID(),
		Role:    store.RoleAssistant,
		Content: content,
		Type:    store.TypeProductList,
		Data: &store.Payload{
			ProductList: &store.ProductListPayload{Query: query, Products: products},
		},
		Timestamp: ts,
	}
}

func (c *composer) groceryList(ts int64, content string, payload *store.GroceryListPayload) store.Message {
	return store.Message{
		ID:      c.newID(),
		Role:    store.RoleAssistant,
		Content: content,
		Type:    store.TypeGroceryList,
		Data:    &store.Payload{GroceryList: payload},
		Actions: []store.Action{
			{ID: "add_all", Label: "Add All to Cart", Value: "add_all_groceries", Kind: store.ActionButton},
			{ID: "modify", Label: "Modify List", Value: "modify_groceries", Kind: store.ActionButton},
		},
		Timestamp: ts,
	}
}

// cartUpdate is the checkout-type confirmation after an add, carrying the cart
// snapshot plus the checkout/continue quick replies.
func (c *composer) cartUpdate(ts int64, content string, cart []store.CartItem, total float64, storeName string) store.Message {
	return store.Message{
		ID:      c.newID(),
		Role:    store.RoleAssistant,
		Content: content,
		Type:    store.TypeCheckout,
		Data: &store.Payload{
			Checkout: &store.CheckoutPayload{
				Items: append([]store.CartItem(nil), cart...),
				Total: total,
				Store: storeName,
			},
		},
		Actions: []store.Action{
			{ID: "checkout", Label: fmt.Sprintf("Checkout (R%s)", formatAmount(total)), Value: "checkout", Kind: store.ActionButton},
			{ID: "continue", Label: "Add more items", Value: "continue", Kind: store.ActionButton},
		},
		Timestamp: ts,
	}
}

// checkoutSummary enumerates the order lines and links out to the first store
// in the cart. The link is a placeholder the serving layer may replace with a
// real payment URL.
func (c *composer) checkoutSummary(ts int64, cart []store.CartItem, total float64) store.Message {
	var lines strings.Builder
	for _, item := range cart {
		fmt.Fprintf(&lines, "- %s - R%s\n", item.Name, formatAmount(item.Price))
	}

	firstStore := cart[0].Store
	storeToken := strings.ReplaceAll(strings.ToLower(firstStore), " ", "_")

	return store.Message{
		ID:   c.newID(),
		Role: store.RoleAssistant,
		Content: fmt.Sprintf("Ready to checkout! Your order:\n\n%s\n**Total: R%s**\n\nI'll open %s for you to complete payment.",
			lines.String(), formatAmount(total), firstStore),
		Type: store.TypeCheckout,
		Data: &store.Payload{
			Checkout: &store.CheckoutPayload{
				Items: append([]store.CartItem(nil), cart...),
				Total: total,
				Store: firstStore,
			},
		},
		Actions: []store.Action{
			{
				ID:      "open_app",
				Label:   fmt.Sprintf("Open %s", firstStore),
				Value:   fmt.Sprintf("open_%s", storeToken),
				Kind:    store.ActionLink,
				LinkURL: fmt.Sprintf("https://www.google.com/search?q=%s", strings.ReplaceAll(firstStore, " ", "+")),
			},
		},
		Timestamp: ts,
	}
}

func storeGridPayload(grid []catalog.StoreInfo, profile *store.UserProfile) *store.Payload {
	stores := make([]store.StoreStatus, len(grid))
	for i, info := range grid {
		stores[i] = store.StoreStatus{
			Key:       info.Key,
			Name:      info.Name,
			Connected: profile.HasConnectedStore(info.Key),
		}
	}
	return &store.Payload{StoreGrid: &store.StoreGridPayload{Stores: stores}}
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// formatAmount renders whole rand without decimals, cents with two.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
