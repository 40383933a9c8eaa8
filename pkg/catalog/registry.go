package catalog

// Registry holds the fixed set of supported stores. Grocery stores get search
// adapters; delivery apps are connect-only (the engine links out to them at
// checkout instead of searching them).
type Registry struct {
	adapters map[string]StoreAdapter
	grid     []StoreInfo
	valid    map[string]struct{}
}

// NewRegistry builds the default store set. Multipliers mirror relative
// price positioning between the chains.
func NewRegistry() *Registry {
	adapters := map[string]StoreAdapter{
		"checkers":   NewMockStoreAdapter("checkers", "Checkers Sixty60", 1.0),
		"pnp":        NewMockStoreAdapter("pnp", "Pick n Pay ASAP!", 1.05),
		"woolworths": NewMockStoreAdapter("woolworths", "Woolworths Dash", 1.2),
	}

	grid := []StoreInfo{
		{Key: "checkers", Name: "Checkers Sixty60"},
		{Key: "pnp", Name: "Pick n Pay"},
		{Key: "uber_eats", Name: "Uber Eats"},
		{Key: "mr_d", Name: "Mr D"},
	}

	valid := map[string]struct{}{}
	for _, key := range []string{"checkers", "pnp", "uber_eats", "mr_d", "woolworths", "mcdonalds"} {
		valid[key] = struct{}{}
	}

	return &Registry{adapters: adapters, grid: grid, valid: valid}
}

// Adapter returns the search adapter for a store key, if it has one.
func (r *Registry) Adapter(key string) (StoreAdapter, bool) {
	a, ok := r.adapters[key]
	return a, ok
}

// Adapters returns every searchable adapter in stable key order.
func (r *Registry) Adapters() []StoreAdapter {
	keys := []string{"checkers", "pnp", "woolworths"}
	out := make([]StoreAdapter, 0, len(keys))
	for _, k := range keys {
		if a, ok := r.adapters[k]; ok {
			out = append(out, a)
		}
	}
	return out
}

// GridStores returns the stores shown on the connect-accounts grid.
func (r *Registry) GridStores() []StoreInfo {
	return append([]StoreInfo(nil), r.grid...)
}

// IsValidKey reports whether key names a known, connectable store.
func (r *Registry) IsValidKey(key string) bool {
	_, ok := r.valid[key]
	return ok
}
