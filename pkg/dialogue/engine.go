package dialogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iamhamptom/foodfriend/pkg/catalog"
	"github.com/Iamhamptom/foodfriend/pkg/store"

	"github.com/google/uuid"
)

const welcomeMessage = "Hi! I'm FoodFriend. I help you eat better and stay on budget. Let's set you up. First, what should I call you?"

// Engine is the dialogue state machine. It is pure with respect to its inputs
// apart from timestamp and identifier generation: Advance never performs I/O
// and confines every side effect to the session value it returns.
type Engine struct {
	registry *catalog.Registry
	compose  *composer
	now      func() time.Time
}

type Option func(*Engine)

// WithClock replaces the timestamp source. Tests use this for determinism.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDSource replaces the message/cart identifier source.
func WithIDSource(newID func() string) Option {
	return func(e *Engine) {
		e.compose.newID = newID
	}
}

func NewEngine(registry *catalog.Registry, opts ...Option) *Engine {
	if registry == nil {
		registry = catalog.NewRegistry()
	}
	e := &Engine{
		registry: registry,
		compose:  &composer{newID: uuid.NewString},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSession creates a fresh session holding only the canned welcome message,
// positioned at the first onboarding step.
func (e *Engine) NewSession() *store.Session {
	tc := e.newTurnClock(nil)
	return &store.Session{
		ID:    e.compose.newID(),
		State: store.StateOnboardingName,
		Messages: []store.Message{
			e.compose.text(tc.at(0), welcomeMessage),
		},
		UserProfile: store.UserProfile{
			ConnectedStores: []string{},
			Permissions:     []string{},
		},
		Cart: []store.CartItem{},
	}
}

// Advance applies one user input to the session and returns the next session
// value. It never fails: unrecognized input degrades to a help or clarifying
// message, and the returned state is always one of the defined states.
func (e *Engine) Advance(session *store.Session, input string) *store.Session {
	next := session.Clone()
	tc := e.newTurnClock(next.LastMessage())

	next.Messages = append(next.Messages, store.Message{
		ID:        e.compose.newID(),
		Role:      store.RoleUser,
		Content:   input,
		Timestamp: tc.at(0),
	})

	switch next.State {
	case store.StateOnboardingName:
		e.handleOnboardingName(next, input, tc)
	case store.StateOnboardingLocation:
		e.handleOnboardingLocation(next, input, tc)
	case store.StateOnboardingCurrency:
		e.handleOnboardingCurrency(next, input, tc)
	case store.StateConnectAccounts:
		e.handleConnectAccounts(next, input, tc)
	case store.StateHistoryPermission:
		e.handleHistoryPermission(next, input, tc)
	case store.StateConfigureTools:
		e.handleConfigureTools(next, input, tc)
	case store.StateReady:
		e.handleReady(next, input, tc)
	default:
		// A session can only get here through corrupted persistence the
		// collaborator failed to reject. Recover into READY.
		next.State = store.StateReady
		e.handleReady(next, input, tc)
	}

	return next
}

// turnClock hands out non-decreasing timestamps within one Advance call,
// anchored after the previous message so transcript order survives clock skew.
type turnClock struct {
	base int64
}

func (e *Engine) newTurnClock(last *store.Message) *turnClock {
	base := e.now().UnixMilli()
	if last != nil && last.Timestamp > base {
		base = last.Timestamp
	}
	return &turnClock{base: base}
}

func (tc *turnClock) at(offsetMillis int64) int64 {
	return tc.base + offsetMillis
}

func (e *Engine) handleOnboardingName(s *store.Session, input string, tc *turnClock) {
	s.UserProfile.Name = input
	s.State = store.StateOnboardingLocation
	s.Messages = append(s.Messages, e.compose.text(tc.at(100),
		fmt.Sprintf("Nice to meet you, %s. Where are you located? (City or Area)", input)))
}

func (e *Engine) handleOnboardingLocation(s *store.Session, input string, tc *turnClock) {
	s.UserProfile.City = input
	s.State = store.StateOnboardingCurrency
	s.Messages = append(s.Messages, e.compose.text(tc.at(100),
		"Got it. What's your preferred currency? (e.g. ZAR, USD)",
		store.Action{ID: "1", Label: "ZAR", Value: "ZAR", Kind: store.ActionButton},
		store.Action{ID: "2", Label: "USD", Value: "USD", Kind: store.ActionButton},
	))
}

func (e *Engine) handleOnboardingCurrency(s *store.Session, input string, tc *turnClock) {
	s.UserProfile.Currency = input
	s.State = store.StateConnectAccounts
	s.Messages = append(s.Messages, e.compose.storeGrid(tc.at(100),
		"Now let's connect the apps you already use so I can find you the best deals.",
		e.registry.GridStores(), &s.UserProfile,
		store.Action{ID: "done", Label: "Done connecting", Value: "done", Kind: store.ActionButton},
	))
}

func (e *Engine) handleConnectAccounts(s *store.Session, input string, tc *turnClock) {
	if strings.EqualFold(input, "done") {
		s.State = store.StateHistoryPermission
		s.Messages = append(s.Messages, e.compose.text(tc.at(100),
			fmt.Sprintf("Great! You've connected %d app(s). If you allow it, I'll scan your past orders to learn what you like and how you spend.",
				len(s.UserProfile.ConnectedStores)),
			store.Action{ID: "allow", Label: "Allow History Access", Value: "allow", Kind: store.ActionButton},
			store.Action{ID: "skip", Label: "Skip for now", Value: "skip", Kind: store.ActionButton},
		))
		return
	}

	storeKey := strings.ToLower(input)
	if !e.registry.IsValidKey(storeKey) {
		// Unknown store token: ignore silently, state holds.
		return
	}

	s.UserProfile.ToggleStore(storeKey)

	// The one sanctioned rewrite of history: refresh the latest store grid in
	// place instead of appending a duplicate.
	if idx := s.LastIndexOfType(store.TypeStoreGrid); idx != -1 {
		rebuilt := s.Messages[idx]
		rebuilt.Data = storeGridPayload(e.registry.GridStores(), &s.UserProfile)
		s.Messages[idx] = rebuilt
	}
}

func (e *Engine) handleHistoryPermission(s *store.Session, input string, tc *turnClock) {
	if input == "allow" {
		s.UserProfile.Permissions = append(s.UserProfile.Permissions, "read_history")
		s.Messages = append(s.Messages,
			e.compose.text(tc.at(100), "Thanks! Reading your history... (Scanning past orders)"),
			e.compose.text(tc.at(1000), "I see you like burgers on Fridays!"),
		)
	}

	s.State = store.StateConfigureTools
	s.Messages = append(s.Messages, e.compose.text(tc.at(1200),
		"One more thing - what would you like help with?",
		store.Action{ID: "planning", Label: "Meal Planning", Value: "enable_planning", Kind: store.ActionButton},
		store.Action{ID: "budgets", Label: "Budget Tracking", Value: "enable_budgets", Kind: store.ActionButton},
		store.Action{ID: "skip_tools", Label: "Just order food", Value: "skip_tools", Kind: store.ActionButton},
	))
}

func (e *Engine) handleConfigureTools(s *store.Session, input string, tc *turnClock) {
	switch {
	case input == "enable_planning":
		s.UserProfile.PlanningEnabled = true
		s.Messages = append(s.Messages, e.compose.text(tc.at(300),
			"Meal planning enabled! Any dietary preferences?",
			store.Action{ID: "veg", Label: "Vegetarian", Value: "diet_vegetarian", Kind: store.ActionButton},
			store.Action{ID: "vegan", Label: "Vegan", Value: "diet_vegan", Kind: store.ActionButton},
			store.Action{ID: "keto", Label: "Keto", Value: "diet_keto", Kind: store.ActionButton},
			store.Action{ID: "halal", Label: "Halal", Value: "diet_halal", Kind: store.ActionButton},
			store.Action{ID: "none", Label: "No restrictions", Value: "diet_none", Kind: store.ActionButton},
		))

	case strings.HasPrefix(input, "diet_"):
		dietType := strings.TrimPrefix(input, "diet_")
		s.UserProfile.Diet = &store.DietPreference{Type: dietType, Restrictions: []string{}}
		s.State = store.StateReady

		content := "All set!\n\nYou can ask me:\n- \"I want a burger for R100\"\n- \"Plan my weekly groceries for R800\"\n- \"What's cheap to eat tonight?\""
		if dietType != "none" {
			content = fmt.Sprintf("Got it! I'll keep your %s diet in mind. %s", dietType, content)
		}
		s.Messages = append(s.Messages, e.compose.text(tc.at(300), content))

	case input == "enable_budgets":
		s.Messages = append(s.Messages, e.compose.text(tc.at(300),
			"What's your weekly food budget? (You can always change this later)",
			store.Action{ID: "b500", Label: "R500/week", Value: "budget_500", Kind: store.ActionButton},
			store.Action{ID: "b1000", Label: "R1000/week", Value: "budget_1000", Kind: store.ActionButton},
			store.Action{ID: "b1500", Label: "R1500/week", Value: "budget_1500", Kind: store.ActionButton},
			store.Action{ID: "custom", Label: "Custom", Value: "budget_custom", Kind: store.ActionButton},
		))

	case strings.HasPrefix(input, "budget_"):
		raw := strings.TrimPrefix(input, "budget_")
		budget := &store.BudgetPreference{}
		content := "Budget set! I'll help you stay on track. Ready to help!\n\n- \"I want a burger for R100\"\n- \"Plan my weekly groceries\""
		if weekly, ok := parseAmount(raw); ok {
			budget.Weekly = &weekly
			content = fmt.Sprintf("Budget set to R%.0f/week! I'll help you stay on track. Ready to help!\n\n- \"I want a burger for R100\"\n- \"Plan my weekly groceries\"", weekly)
		}
		s.UserProfile.Budget = budget
		s.State = store.StateReady
		s.Messages = append(s.Messages, e.compose.text(tc.at(300), content))

	default:
		// Covers skip_tools and anything unrecognized.
		s.State = store.StateReady
		s.Messages = append(s.Messages, e.compose.text(tc.at(300),
			"All set! I'm ready to help.\n\nAsk me for:\n- Takeout: 'I want a burger for R100'\n- Groceries: 'I need groceries for R500'"))
	}
}
