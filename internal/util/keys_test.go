package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetKeyIgnoresOrderAndDuplicates(t *testing.T) {
	key := func(ids ...string) string { return SetKeySorted("export:ns", SortedUnique(ids)) }

	a := key("r2", "r1", "r3")
	assert.Equal(t, a, key("r3", "r1", "r2", "r1"))
	assert.True(t, strings.HasPrefix(a, "export:ns:"))
	assert.Len(t, a, len("export:ns:")+16)

	assert.NotEqual(t, a, key("r1", "r2"))
	// separator keeps "ab"+"c" apart from "a"+"bc"
	assert.NotEqual(t, key("ab", "c"), key("a", "bc"))
}

func TestSortedUniqueDoesNotMutateInput(t *testing.T) {
	in := []string{"b", "a", "b"}
	got := SortedUnique(in)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, []string{"b", "a", "b"}, in)
	assert.Empty(t, SortedUnique(nil))
}

func TestContentKey(t *testing.T) {
	k1 := ContentKey("import:ns", []byte("<RECIPES/>"))
	k2 := ContentKey("import:ns", []byte("<RECIPES/>"))
	k3 := ContentKey("import:ns", []byte("<RECIPE/>"))
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, len("import:ns:")+64)
}

func TestRedact(t *testing.T) {
	k := ContentKey("import:ns", []byte("x"))
	assert.Equal(t, len("import:ns:")+8, len(Redact(k)))
	assert.Equal(t, "short", Redact("short"))
}
