package dialogue

import (
	"fmt"
	"testing"
	"time"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// newTestEngine returns an engine with a deterministic clock and id source.
func newTestEngine() *Engine {
	var ids int
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ticks int64
	return NewEngine(nil,
		WithClock(func() time.Time {
			ticks++
			return base.Add(time.Duration(ticks) * time.Second)
		}),
		WithIDSource(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
}

func TestNewSession(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession()

	if s.State != store.StateOnboardingName {
		t.Errorf("State = %s, want %s", s.State, store.StateOnboardingName)
	}
	if len(s.Messages) != 1 {
		t.Fatalf("Messages = %d, want 1", len(s.Messages))
	}
	if s.Messages[0].Role != store.RoleAssistant {
		t.Errorf("Role = %s, want assistant", s.Messages[0].Role)
	}
	if len(s.Cart) != 0 {
		t.Errorf("Cart = %d items, want 0", len(s.Cart))
	}
}

func TestOnboardingAlwaysAdvancesOneStep(t *testing.T) {
	steps := []struct {
		state store.ChatState
		next  store.ChatState
	}{
		{store.StateOnboardingName, store.StateOnboardingLocation},
		{store.StateOnboardingLocation, store.StateOnboardingCurrency},
		{store.StateOnboardingCurrency, store.StateConnectAccounts},
	}
	inputs := []string{"Alice", "", "   ", "?!#", "a very long free text answer"}

	for _, step := range steps {
		for _, input := range inputs {
			t.Run(fmt.Sprintf("%s/%q", step.state, input), func(t *testing.T) {
				e := newTestEngine()
				s := e.NewSession()
				s.State = step.state

				next := e.Advance(s, input)
				if next.State != step.next {
					t.Errorf("state = %s, want %s", next.State, step.next)
				}
			})
		}
	}
}

func TestAdvanceAlwaysReturnsDefinedState(t *testing.T) {
	defined := map[store.ChatState]bool{}
	for _, st := range store.States() {
		defined[st] = true
	}

	inputs := []string{"", "done", "allow", "skip_tools", "order_zzz", "checkout",
		"gibberish", "groceries for R10", "diet_vegan", "budget_custom", "!!!"}

	for _, st := range store.States() {
		for _, input := range inputs {
			e := newTestEngine()
			s := e.NewSession()
			s.State = st

			next := e.Advance(s, input)
			if !defined[next.State] {
				t.Fatalf("state %s + input %q produced undefined state %q", st, input, next.State)
			}
		}
	}
}

func TestStateNeverMovesBackward(t *testing.T) {
	order := map[store.ChatState]int{}
	for i, st := range store.States() {
		order[st] = i
	}

	inputs := []string{"x", "done", "allow", "checkers", "skip", "enable_planning", "diet_keto"}
	e := newTestEngine()
	s := e.NewSession()

	for turn := 0; turn < 40; turn++ {
		input := inputs[turn%len(inputs)]
		next := e.Advance(s, input)
		if order[next.State] < order[s.State] {
			t.Fatalf("turn %d: state moved backward %s -> %s on %q", turn, s.State, next.State, input)
		}
		s = next
	}
}

func TestConnectAccountsToggleIsItsOwnInverse(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateConnectAccounts)

	once := e.Advance(s, "checkers")
	if !once.UserProfile.HasConnectedStore("checkers") {
		t.Fatal("first toggle did not connect checkers")
	}

	twice := e.Advance(once, "checkers")
	if twice.UserProfile.HasConnectedStore("checkers") {
		t.Fatal("second toggle did not disconnect checkers")
	}
	if len(twice.UserProfile.ConnectedStores) != 0 {
		t.Errorf("ConnectedStores = %v, want empty", twice.UserProfile.ConnectedStores)
	}
}

func TestConnectAccountsRewritesGridInPlace(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateConnectAccounts)

	gridIdx := s.LastIndexOfType(store.TypeStoreGrid)
	if gridIdx == -1 {
		t.Fatal("no store_grid message after currency step")
	}
	msgCount := len(s.Messages)

	next := e.Advance(s, "checkers")

	// One user message appended, no new assistant message, no duplicate grid.
	if len(next.Messages) != msgCount+1 {
		t.Fatalf("messages = %d, want %d", len(next.Messages), msgCount+1)
	}
	if got := next.LastIndexOfType(store.TypeStoreGrid); got != gridIdx {
		t.Fatalf("grid index moved from %d to %d", gridIdx, got)
	}

	grid := next.Messages[gridIdx].Data.StoreGrid
	for _, st := range grid.Stores {
		want := st.Key == "checkers"
		if st.Connected != want {
			t.Errorf("store %s connected = %v, want %v", st.Key, st.Connected, want)
		}
	}
}

func TestConnectAccountsUnknownKeyIsSilentNoOp(t *testing.T) {
	e := newTestEngine()
	s := onboardedTo(t, e, store.StateConnectAccounts)
	msgCount := len(s.Messages)

	next := e.Advance(s, "spazashop")

	if next.State != store.StateConnectAccounts {
		t.Errorf("state = %s, want CONNECT_ACCOUNTS", next.State)
	}
	// Only the user's own message lands; the engine says nothing.
	if len(next.Messages) != msgCount+1 {
		t.Errorf("messages = %d, want %d", len(next.Messages), msgCount+1)
	}
	if len(next.UserProfile.ConnectedStores) != 0 {
		t.Errorf("ConnectedStores = %v, want empty", next.UserProfile.ConnectedStores)
	}
}

func TestHistoryPermissionPaths(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		wantPermissions int
		wantExtraMsgs   int // assistant messages beyond the configure-tools prompt
	}{
		{name: "allow grants and narrates", input: "allow", wantPermissions: 1, wantExtraMsgs: 2},
		{name: "skip declines silently", input: "skip", wantPermissions: 0, wantExtraMsgs: 0},
		{name: "anything else declines", input: "maybe later", wantPermissions: 0, wantExtraMsgs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			s := onboardedTo(t, e, store.StateHistoryPermission)
			before := len(s.Messages)

			next := e.Advance(s, tt.input)

			if next.State != store.StateConfigureTools {
				t.Errorf("state = %s, want CONFIGURE_TOOLS", next.State)
			}
			if got := len(next.UserProfile.Permissions); got != tt.wantPermissions {
				t.Errorf("permissions = %d, want %d", got, tt.wantPermissions)
			}
			// user message + optional narration + tools prompt
			wantMsgs := before + 1 + tt.wantExtraMsgs + 1
			if len(next.Messages) != wantMsgs {
				t.Errorf("messages = %d, want %d", len(next.Messages), wantMsgs)
			}
		})
	}
}

func TestConfigureTools(t *testing.T) {
	tests := []struct {
		name      string
		inputs    []string
		wantState store.ChatState
		check     func(t *testing.T, s *store.Session)
	}{
		{
			name:      "enable planning stays then diet advances",
			inputs:    []string{"enable_planning", "diet_vegan"},
			wantState: store.StateReady,
			check: func(t *testing.T, s *store.Session) {
				if !s.UserProfile.PlanningEnabled {
					t.Error("PlanningEnabled = false, want true")
				}
				if s.UserProfile.Diet == nil || s.UserProfile.Diet.Type != "vegan" {
					t.Errorf("Diet = %+v, want vegan", s.UserProfile.Diet)
				}
			},
		},
		{
			name:      "enable budgets stays then amount advances",
			inputs:    []string{"enable_budgets", "budget_1000"},
			wantState: store.StateReady,
			check: func(t *testing.T, s *store.Session) {
				if s.UserProfile.Budget == nil || s.UserProfile.Budget.Weekly == nil {
					t.Fatal("weekly budget not recorded")
				}
				if *s.UserProfile.Budget.Weekly != 1000 {
					t.Errorf("Weekly = %v, want 1000", *s.UserProfile.Budget.Weekly)
				}
			},
		},
		{
			name:      "custom budget records no amount",
			inputs:    []string{"enable_budgets", "budget_custom"},
			wantState: store.StateReady,
			check: func(t *testing.T, s *store.Session) {
				if s.UserProfile.Budget == nil {
					t.Fatal("budget preference not recorded")
				}
				if s.UserProfile.Budget.Weekly != nil {
					t.Errorf("Weekly = %v, want nil", *s.UserProfile.Budget.Weekly)
				}
			},
		},
		{
			name:      "skip advances",
			inputs:    []string{"skip_tools"},
			wantState: store.StateReady,
		},
		{
			name:      "unrecognized advances",
			inputs:    []string{"whatever"},
			wantState: store.StateReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			s := onboardedTo(t, e, store.StateConfigureTools)
			for _, input := range tt.inputs {
				s = e.Advance(s, input)
			}
			if s.State != tt.wantState {
				t.Errorf("state = %s, want %s", s.State, tt.wantState)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession()
	for _, input := range []string{"Alice", "Cape Town", "ZAR", "done", "allow", "skip_tools", "burger for R100"} {
		s = e.Advance(s, input)
	}

	for i := 1; i < len(s.Messages); i++ {
		if s.Messages[i].Timestamp < s.Messages[i-1].Timestamp {
			t.Fatalf("message %d timestamp %d < previous %d", i, s.Messages[i].Timestamp, s.Messages[i-1].Timestamp)
		}
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession()
	msgCount := len(s.Messages)
	state := s.State

	_ = e.Advance(s, "Alice")

	if len(s.Messages) != msgCount {
		t.Errorf("input session messages mutated: %d, want %d", len(s.Messages), msgCount)
	}
	if s.State != state {
		t.Errorf("input session state mutated: %s, want %s", s.State, state)
	}
	if s.UserProfile.Name != "" {
		t.Errorf("input session profile mutated: name = %q", s.UserProfile.Name)
	}
}

func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine()
	s := e.NewSession()

	s = e.Advance(s, "Alice")
	if s.State != store.StateOnboardingLocation {
		t.Fatalf("after name: state = %s", s.State)
	}
	if s.UserProfile.Name != "Alice" {
		t.Fatalf("name = %q, want Alice", s.UserProfile.Name)
	}

	s = e.Advance(s, "Cape Town")
	if s.State != store.StateOnboardingCurrency {
		t.Fatalf("after city: state = %s", s.State)
	}

	s = e.Advance(s, "ZAR")
	if s.State != store.StateConnectAccounts {
		t.Fatalf("after currency: state = %s", s.State)
	}
	last := s.LastMessage()
	if last.Type != store.TypeStoreGrid {
		t.Fatalf("latest message type = %s, want store_grid", last.Type)
	}
	for _, st := range last.Data.StoreGrid.Stores {
		if st.Connected {
			t.Fatalf("store %s connected before any toggle", st.Key)
		}
	}

	s = e.Advance(s, "checkers")
	if s.State != store.StateConnectAccounts {
		t.Fatalf("toggle changed state to %s", s.State)
	}
	grid := s.Messages[s.LastIndexOfType(store.TypeStoreGrid)].Data.StoreGrid
	var checkersConnected bool
	for _, st := range grid.Stores {
		if st.Key == "checkers" {
			checkersConnected = st.Connected
		}
	}
	if !checkersConnected {
		t.Fatal("checkers entry did not flip to connected")
	}

	s = e.Advance(s, "done")
	if s.State != store.StateHistoryPermission {
		t.Fatalf("after done: state = %s", s.State)
	}

	s = e.Advance(s, "skip")
	if s.State != store.StateConfigureTools {
		t.Fatalf("after skip: state = %s", s.State)
	}

	s = e.Advance(s, "skip_tools")
	if s.State != store.StateReady {
		t.Fatalf("after skip_tools: state = %s", s.State)
	}

	s = e.Advance(s, "I want a burger for R100")
	last = s.LastMessage()
	if last.Type != store.TypeProductList {
		t.Fatalf("craving reply type = %s, want product_list", last.Type)
	}
	products := last.Data.ProductList.Products
	if len(products) != 6 {
		t.Fatalf("products = %d, want 6", len(products))
	}
	for _, p := range products {
		ceiling := ceilingFor(p.ID, 100)
		if p.Price > ceiling {
			t.Errorf("offer %s price %.0f exceeds ceiling %.0f", p.ID, p.Price, ceiling)
		}
	}

	s = e.Advance(s, "order_p1")
	if len(s.Cart) != 1 {
		t.Fatalf("cart = %d lines, want 1", len(s.Cart))
	}
	if s.LastMessage().Type != store.TypeCheckout {
		t.Fatalf("order reply type = %s, want checkout", s.LastMessage().Type)
	}
	orderedPrice := s.Cart[0].Price

	s = e.Advance(s, "checkout")
	if len(s.Cart) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(s.Cart))
	}
	last = s.LastMessage()
	if last.Type != store.TypeCheckout {
		t.Fatalf("checkout reply type = %s", last.Type)
	}
	if last.Data.Checkout.Total != orderedPrice {
		t.Errorf("checkout total = %.2f, want %.2f (computed before clearing)", last.Data.Checkout.Total, orderedPrice)
	}
	if len(last.Data.Checkout.Items) != 1 {
		t.Errorf("checkout snapshot = %d lines, want 1", len(last.Data.Checkout.Items))
	}
}

func ceilingFor(id string, budget float64) float64 {
	for _, tier := range takeoutTiers {
		if tier.id == id {
			return budget + tier.budgetOffset
		}
	}
	return budget
}

// onboardedTo replays canned onboarding answers until the session reaches the
// requested state.
func onboardedTo(t *testing.T, e *Engine, target store.ChatState) *store.Session {
	t.Helper()
	s := e.NewSession()
	script := []string{"Alice", "Cape Town", "ZAR", "done", "skip", "skip_tools"}
	for _, input := range script {
		if s.State == target {
			return s
		}
		s = e.Advance(s, input)
	}
	if s.State != target {
		t.Fatalf("could not reach state %s, stuck at %s", target, s.State)
	}
	return s
}
