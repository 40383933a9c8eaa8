package dialogue

import (
	"testing"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

func TestGroceryTiering(t *testing.T) {
	baseCount := len(baseGroceryItems)
	extraCount := baseCount + len(extraGroceryItems)
	premiumCount := extraCount + len(premiumGroceryItems)

	tests := []struct {
		budget    float64
		wantItems int
	}{
		{300, baseCount},
		{499, baseCount},
		{500, extraCount},
		{600, extraCount},
		{799, extraCount},
		{800, premiumCount},
		{900, premiumCount},
		{5000, premiumCount},
	}

	for _, tt := range tests {
		items := groceryItemsForBudget(tt.budget)
		if len(items) != tt.wantItems {
			t.Errorf("budget %.0f: items = %d, want %d", tt.budget, len(items), tt.wantItems)
		}
	}
}

func TestGroceryListIsDeterministic(t *testing.T) {
	a := buildGroceryPayload(groceryItemsForBudget(600), 600)
	b := buildGroceryPayload(groceryItemsForBudget(600), 600)

	if a.Total != b.Total {
		t.Fatalf("totals differ: %v vs %v", a.Total, b.Total)
	}
	if len(a.Groups) != len(b.Groups) {
		t.Fatalf("group counts differ: %d vs %d", len(a.Groups), len(b.Groups))
	}
	for i := range a.Groups {
		if a.Groups[i].Category != b.Groups[i].Category {
			t.Errorf("group %d category %q vs %q", i, a.Groups[i].Category, b.Groups[i].Category)
		}
	}
}

func TestGroceryGroupingFirstOccurrenceOrder(t *testing.T) {
	payload := buildGroceryPayload(groceryItemsForBudget(900), 900)

	// Category order must follow first appearance in the catalog, with tiers
	// appended in order: Dairy, Bakery, Meat, Pantry, Vegetables, Fruit, Seafood.
	want := []string{"Dairy", "Bakery", "Meat", "Pantry", "Vegetables", "Fruit", "Seafood"}
	if len(payload.Groups) != len(want) {
		t.Fatalf("groups = %d, want %d", len(payload.Groups), len(want))
	}
	for i, category := range want {
		if payload.Groups[i].Category != category {
			t.Errorf("group %d = %s, want %s", i, payload.Groups[i].Category, category)
		}
	}
}

func TestGroceryBudgetAnnotation(t *testing.T) {
	// Base tier totals 425, so 450 is under and 300 is over.
	under := buildGroceryPayload(groceryItemsForBudget(450), 450)
	if !under.UnderBudget {
		t.Errorf("budget 450: UnderBudget = false, total %.0f", under.Total)
	}
	if under.Difference != 450-under.Total {
		t.Errorf("difference = %v, want %v", under.Difference, 450-under.Total)
	}

	over := buildGroceryPayload(groceryItemsForBudget(300), 300)
	if over.UnderBudget {
		t.Errorf("budget 300: UnderBudget = true, total %.0f", over.Total)
	}
	if over.Difference >= 0 {
		t.Errorf("difference = %v, want negative", over.Difference)
	}
}

func TestGroceryPlanningWithoutBudgetAsksInstead(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)

	next := e.Advance(s, "I need groceries for 4 people")

	last := next.LastMessage()
	if last.Type != store.TypeText {
		t.Fatalf("reply type = %s, want text clarification", last.Type)
	}
	if next.LastIndexOfType(store.TypeGroceryList) != -1 {
		t.Fatal("grocery list generated despite missing budget")
	}
}

func TestGroceryPlanningComposesGroceryList(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateReady)

	next := e.Advance(s, "I need groceries for R600")

	last := next.LastMessage()
	if last.Type != store.TypeGroceryList {
		t.Fatalf("reply type = %s, want grocery_list", last.Type)
	}
	payload := last.Data.GroceryList
	if payload.Budget != 600 {
		t.Errorf("payload budget = %v, want 600", payload.Budget)
	}
	if got := len(payload.FlatItems()); got != len(baseGroceryItems)+len(extraGroceryItems) {
		t.Errorf("items = %d, want base+extra", got)
	}

	var haveAddAll, haveModify bool
	for _, a := range last.Actions {
		switch a.Value {
		case "add_all_groceries":
			haveAddAll = true
		case "modify_groceries":
			haveModify = true
		}
	}
	if !haveAddAll || !haveModify {
		t.Errorf("actions missing: add_all=%v modify=%v", haveAddAll, haveModify)
	}
}
