package dialogue

import (
	"strings"
	"testing"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

func TestIntentRuleOrder(t *testing.T) {
	// Action tokens must be classified before the keyword rules, otherwise
	// "add_all_groceries" would hit the grocery keyword rule.
	want := []string{
		"add_to_cart",
		"checkout",
		"resume_shopping",
		"add_all_groceries",
		"modify_groceries",
		"grocery_planning",
		"takeout_craving",
		"fallback",
	}
	if len(intentRules) != len(want) {
		t.Fatalf("rules = %d, want %d", len(intentRules), len(want))
	}
	for i, name := range want {
		if intentRules[i].name != name {
			t.Errorf("rule %d = %s, want %s", i, intentRules[i].name, name)
		}
	}
}

func TestAddAllGroceriesTokenNotMisclassified(t *testing.T) {
	for _, rule := range intentRules {
		if rule.matches("add_all_groceries", "add_all_groceries") {
			if rule.name != "add_all_groceries" {
				t.Fatalf("token matched rule %s first", rule.name)
			}
			return
		}
	}
	t.Fatal("no rule matched")
}

func TestReadyNeverChangesState(t *testing.T) {
	inputs := []string{"checkout", "continue", "order_p1", "groceries R500",
		"burger R100", "add_all_groceries", "modify_groceries", "blah"}

	for _, input := range inputs {
		e := newTestEngine()
		s := onboardedTo(t, e, store.StateReady)
		next := e.Advance(s, input)
		if next.State != store.StateReady {
			t.Errorf("input %q moved state to %s", input, next.State)
		}
	}
}

func TestStaleOrderTokenIsSilentNoOp(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	msgCount := len(s.Messages)

	next := e.Advance(s, "order_p1") // no product_list exists yet

	if len(next.Cart) != 0 {
		t.Errorf("cart = %d lines, want 0", len(next.Cart))
	}
	if len(next.Messages) != msgCount+1 { // only the user message
		t.Errorf("messages = %d, want %d", len(next.Messages), msgCount+1)
	}
}

func TestUnknownProductIDIsSilentNoOp(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	s = e.Advance(s, "burger for R100")
	msgCount := len(s.Messages)

	next := e.Advance(s, "order_p99")

	if len(next.Cart) != 0 {
		t.Errorf("cart = %d lines, want 0", len(next.Cart))
	}
	if len(next.Messages) != msgCount+1 {
		t.Errorf("messages = %d, want %d", len(next.Messages), msgCount+1)
	}
}

func TestOrderTokenAddsLineAndComposesCheckout(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	s = e.Advance(s, "burger for R100")

	next := e.Advance(s, "order_p2")

	if len(next.Cart) != 1 {
		t.Fatalf("cart = %d lines, want 1", len(next.Cart))
	}
	if next.Cart[0].Name != "Premium Burger" {
		t.Errorf("line name = %q, want Premium Burger", next.Cart[0].Name)
	}
	last := next.LastMessage()
	if last.Type != store.TypeCheckout {
		t.Fatalf("reply type = %s, want checkout", last.Type)
	}
	var haveCheckout, haveContinue bool
	for _, a := range last.Actions {
		switch a.Value {
		case "checkout":
			haveCheckout = true
		case "continue":
			haveContinue = true
		}
	}
	if !haveCheckout || !haveContinue {
		t.Errorf("actions missing: checkout=%v continue=%v", haveCheckout, haveContinue)
	}
}

func TestAddAllGroceriesBulkAdd(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	s = e.Advance(s, "groceries for R600")

	listMsg := s.LastMessage()
	wantLines := len(listMsg.Data.GroceryList.FlatItems())

	next := e.Advance(s, "add_all_groceries")

	if len(next.Cart) != wantLines {
		t.Fatalf("cart = %d lines, want %d", len(next.Cart), wantLines)
	}
	if next.LastMessage().Type != store.TypeCheckout {
		t.Errorf("reply type = %s, want checkout", next.LastMessage().Type)
	}
}

func TestAddAllGroceriesWithoutListIsSilentNoOp(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	msgCount := len(s.Messages)

	next := e.Advance(s, "add_all_groceries")

	if len(next.Cart) != 0 {
		t.Errorf("cart = %d lines, want 0", len(next.Cart))
	}
	if len(next.Messages) != msgCount+1 {
		t.Errorf("messages = %d, want %d", len(next.Messages), msgCount+1)
	}
}

func TestCheckoutClearsCartRegardlessOfSize(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	s = e.Advance(s, "groceries for R900")
	s = e.Advance(s, "add_all_groceries")
	if len(s.Cart) == 0 {
		t.Fatal("setup failed: cart empty before checkout")
	}
	wantTotal := CartTotal(s)

	next := e.Advance(s, "checkout")

	if len(next.Cart) != 0 {
		t.Fatalf("cart = %d lines after checkout, want 0", len(next.Cart))
	}
	summary := next.LastMessage()
	if summary.Data.Checkout.Total != wantTotal {
		t.Errorf("summary total = %v, want %v", summary.Data.Checkout.Total, wantTotal)
	}
	if !strings.Contains(summary.Content, "Total: R") {
		t.Errorf("summary content missing total: %q", summary.Content)
	}
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)

	next := e.Advance(s, "checkout")

	if next.State != store.StateReady {
		t.Errorf("state = %s, want READY", next.State)
	}
	if next.LastMessage().Type != store.TypeText {
		t.Errorf("reply type = %s, want text", next.LastMessage().Type)
	}
}

func TestCheckoutLinksFirstStoreInCart(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)
	s = e.Advance(s, "burger for R100")
	s = e.Advance(s, "order_p3") // Budget Burger @ Checkers

	next := e.Advance(s, "checkout")

	last := next.LastMessage()
	if len(last.Actions) != 1 {
		t.Fatalf("actions = %d, want 1", len(last.Actions))
	}
	action := last.Actions[0]
	if action.Kind != store.ActionLink {
		t.Errorf("action kind = %s, want link", action.Kind)
	}
	if action.Value != "open_checkers" {
		t.Errorf("action value = %q, want open_checkers", action.Value)
	}
	if action.LinkURL == "" {
		t.Error("action link URL empty")
	}
}

func TestFallbackListsCapabilities(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)

	next := e.Advance(s, "what is the meaning of life")

	last := next.LastMessage()
	if last.Type != store.TypeText {
		t.Fatalf("reply type = %s, want text", last.Type)
	}
	if !strings.Contains(last.Content, "Takeout") || !strings.Contains(last.Content, "Groceries") {
		t.Errorf("fallback does not list capabilities: %q", last.Content)
	}
}
