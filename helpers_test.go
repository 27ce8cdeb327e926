package brewxml

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func ptr[T any](v T) *T { return &v }

// strictRanges is a caller rule set stricter than the codec's defaults.
func strictRanges(v *validator.Validate) {
	v.RegisterStructValidationMapRules(map[string]string{
		"Efficiency": "omitempty,lte=100",
		"BatchSize":  "omitempty,gte=0",
		"BoilTime":   "omitempty,gte=0",
	}, Recipe{})
	v.RegisterStructValidationMapRules(map[string]string{"Alpha": "omitempty,lte=100"}, Hop{})
	v.RegisterStructValidationMapRules(map[string]string{"Attenuation": "omitempty,gte=0"}, Yeast{})
}

type skippedAddition struct {
	kind          string
	recipe, index int
	err           error
}

type fallback struct{ element, field, raw string }

type recordingHooks struct {
	NopHooks
	mu        sync.Mutex
	additions []skippedAddition
	recipes   []string
	fallbacks []fallback
}

func (h *recordingHooks) AdditionSkipped(kind string, recipeIndex, index int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.additions = append(h.additions, skippedAddition{kind, recipeIndex, index, err})
}

func (h *recordingHooks) RecipeSkipped(_ int, name string, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recipes = append(h.recipes, name)
}

func (h *recordingHooks) FieldFallback(element, field, raw string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fallbacks = append(h.fallbacks, fallback{element, field, raw})
}
