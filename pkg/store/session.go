package store

// ChatState identifies where the session is in the conversation flow.
type ChatState string

const (
	StateOnboardingName     ChatState = "ONBOARDING_NAME"
	StateOnboardingLocation ChatState = "ONBOARDING_LOCATION"
	StateOnboardingCurrency ChatState = "ONBOARDING_CURRENCY"
	StateConnectAccounts    ChatState = "CONNECT_ACCOUNTS"
	StateHistoryPermission  ChatState = "HISTORY_PERMISSION"
	StateConfigureTools     ChatState = "CONFIGURE_TOOLS"
	StateReady              ChatState = "READY"
)

// States returns every defined state in traversal order.
func States() []ChatState {
	return []ChatState{
		StateOnboardingName,
		StateOnboardingLocation,
		StateOnboardingCurrency,
		StateConnectAccounts,
		StateHistoryPermission,
		StateConfigureTools,
		StateReady,
	}
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// MessageType tags which payload variant a message carries.
type MessageType string

const (
	TypeText        MessageType = "text"
	TypeStoreGrid   MessageType = "store_grid"
	TypeProductList MessageType = "product_list"
	TypeGroceryList MessageType = "grocery_list"
	TypeCheckout    MessageType = "checkout"
)

type ActionKind string

const (
	ActionButton ActionKind = "button"
	ActionLink   ActionKind = "link"
)

// Action is a quick-reply affordance attached to a message. Its Value is fed
// back into the engine verbatim when the user picks it.
type Action struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Value   string     `json:"value"`
	Kind    ActionKind `json:"type"`
	LinkURL string     `json:"linkUrl,omitempty"`
}

// StoreStatus is one entry of a store_grid payload.
type StoreStatus struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Product is a single offer inside a product_list payload.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Store    string  `json:"store"`
	Price    float64 `json:"price"`
	ETA      string  `json:"eta"`
	Category string  `json:"category,omitempty"`
}

// GroceryItem is a single line of a grocery_list payload.
type GroceryItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Store    string  `json:"store"`
}

type StoreGridPayload struct {
	Stores []StoreStatus `json:"stores"`
}

type ProductListPayload struct {
	Query    string    `json:"query"`
	Products []Product `json:"products"`
}

// GroceryGroup collects the grocery lines of one category. Groups appear in
// first-occurrence order of their category, never resorted.
type GroceryGroup struct {
	Category string        `json:"category"`
	Items    []GroceryItem `json:"items"`
}

type GroceryListPayload struct {
	Groups      []GroceryGroup `json:"groups"`
	Total       float64        `json:"total"`
	Budget      float64        `json:"budget"`
	UnderBudget bool           `json:"underBudget"`
	Difference  float64        `json:"difference"` // budget - total, negative when over
}

// FlatItems returns every line across groups in display order.
func (p *GroceryListPayload) FlatItems() []GroceryItem {
	var items []GroceryItem
	for _, g := range p.Groups {
		items = append(items, g.Items...)
	}
	return items
}

type CheckoutPayload struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
	Store string     `json:"store,omitempty"`
}

// Payload is a tagged union: the owning Message's Type says which variant is
// set, and exactly one of the pointers is non-nil for non-text messages.
type Payload struct {
	StoreGrid   *StoreGridPayload   `json:"storeGrid,omitempty"`
	ProductList *ProductListPayload `json:"productList,omitempty"`
	GroceryList *GroceryListPayload `json:"groceryList,omitempty"`
	Checkout    *CheckoutPayload    `json:"checkout,omitempty"`
}

// Message is one turn of the transcript. Owned by its Session; append-only
// except for the documented store_grid rewrite.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type,omitempty"`
	Actions   []Action    `json:"actions,omitempty"`
	Data      *Payload    `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"` // unix millis, display ordering only
}

type DietPreference struct {
	Type         string   `json:"type"`
	Restrictions []string `json:"restrictions"`
}

type BudgetPreference struct {
	Weekly  *float64 `json:"weekly,omitempty"`
	Monthly *float64 `json:"monthly,omitempty"`
}

type UserProfile struct {
	Name            string            `json:"name,omitempty"`
	City            string            `json:"city,omitempty"`
	Currency        string            `json:"currency,omitempty"`
	ConnectedStores []string          `json:"connected_stores"`
	Permissions     []string          `json:"permissions"`
	Diet            *DietPreference   `json:"diet,omitempty"`
	Budget          *BudgetPreference `json:"budget,omitempty"`
	PlanningEnabled bool              `json:"planningEnabled,omitempty"`
}

// HasConnectedStore reports membership in the connected-store set.
func (p *UserProfile) HasConnectedStore(key string) bool {
	for _, k := range p.ConnectedStores {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleStore flips membership of key in the connected-store set.
func (p *UserProfile) ToggleStore(key string) {
	for i, k := range p.ConnectedStores {
		if k == key {
			p.ConnectedStores = append(p.ConnectedStores[:i], p.ConnectedStores[i+1:]...)
			return
		}
	}
	p.ConnectedStores = append(p.ConnectedStores, key)
}

// CartItem is one line of the cart. Every add appends a fresh quantity-1 line;
// quantities are never incremented in place.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Store    string  `json:"store"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Session is the full conversational state for one user. The engine consumes
// and returns Session values; persistence is the caller's concern.
type Session struct {
	ID          string      `json:"id"`
	Messages    []Message   `json:"messages"`
	State       ChatState   `json:"state"`
	UserProfile UserProfile `json:"userProfile"`
	Cart        []CartItem  `json:"cart"`
}

// Clone returns a deep copy so the engine can build the next session value
// without aliasing the caller's slices.
func (s *Session) Clone() *Session {
	next := &Session{
		ID:          s.ID,
		State:       s.State,
		UserProfile: s.UserProfile,
		Messages:    make([]Message, len(s.Messages)),
		Cart:        append([]CartItem(nil), s.Cart...),
	}

	for i, m := range s.Messages {
		next.Messages[i] = cloneMessage(m)
	}

	p := &next.UserProfile
	p.ConnectedStores = append([]string(nil), s.UserProfile.ConnectedStores...)
	p.Permissions = append([]string(nil), s.UserProfile.Permissions...)
	if s.UserProfile.Diet != nil {
		diet := *s.UserProfile.Diet
		diet.Restrictions = append([]string(nil), s.UserProfile.Diet.Restrictions...)
		p.Diet = &diet
	}
	if s.UserProfile.Budget != nil {
		budget := *s.UserProfile.Budget
		p.Budget = &budget
	}

	return next
}

func cloneMessage(m Message) Message {
	out := m
	out.Actions = append([]Action(nil), m.Actions...)
	if m.Data != nil {
		data := Payload{}
		if m.Data.StoreGrid != nil {
			grid := StoreGridPayload{Stores: append([]StoreStatus(nil), m.Data.StoreGrid.Stores...)}
			data.StoreGrid = &grid
		}
		if m.Data.ProductList != nil {
			list := ProductListPayload{
				Query:    m.Data.ProductList.Query,
				Products: append([]Product(nil), m.Data.ProductList.Products...),
			}
			data.ProductList = &list
		}
		if m.Data.GroceryList != nil {
			list := *m.Data.GroceryList
			list.Groups = make([]GroceryGroup, len(m.Data.GroceryList.Groups))
			for i, g := range m.Data.GroceryList.Groups {
				list.Groups[i] = GroceryGroup{
					Category: g.Category,
					Items:    append([]GroceryItem(nil), g.Items...),
				}
			}
			data.GroceryList = &list
		}
		if m.Data.Checkout != nil {
			checkout := *m.Data.Checkout
			checkout.Items = append([]CartItem(nil), m.Data.Checkout.Items...)
			data.Checkout = &checkout
		}
		out.Data = &data
	}
	return out
}

// LastMessage returns the newest message, or nil for an empty transcript.
func (s *Session) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// LastIndexOfType returns the index of the newest message carrying the given
// payload type, or -1 if none exists.
func (s *Session) LastIndexOfType(t MessageType) int {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Type == t {
			return i
		}
	}
	return -1
}
