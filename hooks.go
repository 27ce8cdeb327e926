package brewxml

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the codec calls them
// inline while decoding.
type Hooks interface {
	// An addition failed validation and was dropped from its recipe.
	// kind ∈ {"hop", "fermentable", "yeast", "misc"}
	AdditionSkipped(kind string, recipeIndex, index int, err error)

	// A whole recipe failed validation and was dropped from the result.
	RecipeSkipped(index int, name string, err error)

	// A leaf was present but could not be coerced; its default was used.
	FieldFallback(element, field, raw string)

	// Cache events raised by doccache.
	// reason ∈ {"corrupt", "gen_mismatch", "value_decode"}
	CacheSelfHeal(storageKey, reason string)
	CacheSetRejected(storageKey string)
	GenSnapshotError(count int, err error)
	GenBumpError(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) AdditionSkipped(string, int, int, error) {}
func (NopHooks) RecipeSkipped(int, string, error)        {}
func (NopHooks) FieldFallback(string, string, string)    {}
func (NopHooks) CacheSelfHeal(string, string)            {}
func (NopHooks) CacheSetRejected(string)                 {}
func (NopHooks) GenSnapshotError(int, error)             {}
func (NopHooks) GenBumpError(string, error)              {}

// MultiHooks fans every event out to each member in order.
type MultiHooks []Hooks

var _ Hooks = MultiHooks(nil)

func (m MultiHooks) AdditionSkipped(kind string, recipeIndex, index int, err error) {
	for _, h := range m {
		h.AdditionSkipped(kind, recipeIndex, index, err)
	}
}

func (m MultiHooks) RecipeSkipped(index int, name string, err error) {
	for _, h := range m {
		h.RecipeSkipped(index, name, err)
	}
}

func (m MultiHooks) FieldFallback(element, field, raw string) {
	for _, h := range m {
		h.FieldFallback(element, field, raw)
	}
}

func (m MultiHooks) CacheSelfHeal(storageKey, reason string) {
	for _, h := range m {
		h.CacheSelfHeal(storageKey, reason)
	}
}

func (m MultiHooks) CacheSetRejected(storageKey string) {
	for _, h := range m {
		h.CacheSetRejected(storageKey)
	}
}

func (m MultiHooks) GenSnapshotError(count int, err error) {
	for _, h := range m {
		h.GenSnapshotError(count, err)
	}
}

func (m MultiHooks) GenBumpError(storageKey string, err error) {
	for _, h := range m {
		h.GenBumpError(storageKey, err)
	}
}
