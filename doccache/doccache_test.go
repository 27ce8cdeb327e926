package doccache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
	pr "github.com/unkn0wn-root/brewxml/provider"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	mu   sync.Mutex
	m    map[string]memEntry
	sets int
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, exp: exp}
	p.sets++
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}

func (p *memProvider) Close(_ context.Context) error { return nil }

func (p *memProvider) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

func (p *memProvider) put(key string, v []byte) {
	p.mu.Lock()
	p.m[key] = memEntry{v: v}
	p.mu.Unlock()
}

type healHooks struct {
	brewxml.NopHooks
	mu      sync.Mutex
	reasons []string
}

func (h *healHooks) CacheSelfHeal(_ string, reason string) {
	h.mu.Lock()
	h.reasons = append(h.reasons, reason)
	h.mu.Unlock()
}

const pale = `<?xml version="1.0"?>
<RECIPES>
  <RECIPE>
    <NAME>Pale Ale</NAME>
    <VERSION>1</VERSION>
    <BATCH_SIZE>20</BATCH_SIZE>
    <HOPS><HOP><NAME>Cascade</NAME><ALPHA>5.5</ALPHA><TIME>60</TIME></HOP></HOPS>
  </RECIPE>
</RECIPES>`

func ptr[T any](v T) *T { return &v }

func TestImportCacheHitSkipsDecode(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ic, err := NewImportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ic.Close(ctx)

	first, err := ic.Decode(ctx, []byte(pale))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Pale Ale", first[0].Name)
	assert.Equal(t, 1, mp.len())

	second, err := ic.Decode(ctx, []byte(pale))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, mp.sets, "hit must not rewrite the entry")
}

func TestImportCacheNeverCachesErrors(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ic, err := NewImportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ic.Close(ctx)

	_, err = ic.Decode(ctx, []byte("<RECIPES><RECIPE>"))
	require.ErrorIs(t, err, brewxml.ErrMalformedDocument)
	_, err = ic.Decode(ctx, []byte("<RECIPES/>"))
	require.ErrorIs(t, err, brewxml.ErrNoRecipeElements)
	assert.Zero(t, mp.len())
}

func TestImportCacheSelfHealsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	hooks := &healHooks{}
	ic, err := NewImportCache(Options{Namespace: "t", Provider: mp, Hooks: hooks})
	require.NoError(t, err)
	defer ic.Close(ctx)

	mp.put(ic.key([]byte(pale)), []byte("garbage"))

	rs, err := ic.Decode(ctx, []byte(pale))
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, []string{"corrupt"}, hooks.reasons)
	assert.Equal(t, 1, mp.sets, "healed entry is rewritten from a fresh decode")
}

func TestImportCacheDisabledPassesThrough(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ic, err := NewImportCache(Options{Namespace: "t", Provider: mp, Disabled: true})
	require.NoError(t, err)
	defer ic.Close(ctx)

	rs, err := ic.Decode(ctx, []byte(pale))
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Zero(t, mp.len())
}

func TestNewRequiresProviderAndNamespace(t *testing.T) {
	_, err := NewImportCache(Options{Namespace: "t"})
	assert.Error(t, err)
	_, err = NewExportCache(Options{Provider: newMemProvider()})
	assert.Error(t, err)
}

type library struct {
	mu    sync.Mutex
	byID  map[string]brewxml.Recipe
	loads int
}

func (l *library) load(_ context.Context, ids []string) ([]brewxml.Recipe, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	out := make([]brewxml.Recipe, 0, len(ids))
	for _, id := range ids {
		r, ok := l.byID[id]
		if !ok {
			return nil, errors.New("not found: " + id)
		}
		out = append(out, r)
	}
	return out, nil
}

func newLibrary() *library {
	return &library{byID: map[string]brewxml.Recipe{
		"a": {Name: "Amber", Version: 1, BatchSize: ptr(20.0)},
		"b": {Name: "Bock", Version: 1, BoilTime: ptr(90.0)},
	}}
}

func TestExportCacheHitAndPermutation(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	doc, err := ec.Export(ctx, []string{"b", "a"}, false, lib.load)
	require.NoError(t, err)
	assert.Equal(t, 1, lib.loads)

	rs, err := brewxml.Decode(doc)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "Amber", rs[0].Name, "documents list recipes in sorted id order")

	again, err := ec.Export(ctx, []string{"a", "b", "a"}, false, lib.load)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
	assert.Equal(t, 1, lib.loads)

	_, err = ec.Export(ctx, []string{"a", "b"}, true, lib.load)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.loads, "pretty and compact are cached separately")
}

func TestExportCacheInvalidateMakesEntryStale(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	hooks := &healHooks{}
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp, Hooks: hooks})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	_, err = ec.Export(ctx, []string{"a", "b"}, false, lib.load)
	require.NoError(t, err)

	lib.mu.Lock()
	lib.byID["b"] = brewxml.Recipe{Name: "Doppelbock", Version: 1}
	lib.mu.Unlock()
	require.NoError(t, ec.Invalidate(ctx, "b"))

	doc, err := ec.Export(ctx, []string{"a", "b"}, false, lib.load)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.loads)
	assert.Contains(t, string(doc), "<NAME>Doppelbock</NAME>")
	assert.Equal(t, []string{"gen_mismatch"}, hooks.reasons)

	_, err = ec.Export(ctx, []string{"a", "b"}, false, lib.load)
	require.NoError(t, err)
	assert.Equal(t, 2, lib.loads, "rebuilt entry is cached again")
}

func TestExportCacheSkipsWriteWhenGenMovesDuringLoad(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	racing := func(ctx context.Context, ids []string) ([]brewxml.Recipe, error) {
		require.NoError(t, ec.Invalidate(ctx, "a"))
		return lib.load(ctx, ids)
	}

	_, err = ec.Export(ctx, []string{"a"}, false, racing)
	require.NoError(t, err)
	assert.Zero(t, mp.len())
}

func TestExportCacheErrors(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	_, err = ec.Export(ctx, nil, false, lib.load)
	require.ErrorIs(t, err, brewxml.ErrNoRecipes)

	_, err = ec.Export(ctx, []string{"zzz"}, false, lib.load)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found: zzz")
	assert.Zero(t, mp.len())
}

func TestExportCacheReturnsCopy(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	_, err = ec.Export(ctx, []string{"a"}, false, lib.load)
	require.NoError(t, err)
	hit, err := ec.Export(ctx, []string{"a"}, false, lib.load)
	require.NoError(t, err)
	hit[0] = 'X'

	again, err := ec.Export(ctx, []string{"a"}, false, lib.load)
	require.NoError(t, err)
	assert.Equal(t, byte('<'), again[0])
}

func TestExportCacheCompressedDocuments(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	z, err := codec.NewZstd[[]byte](codec.Bytes{}, 0)
	require.NoError(t, err)
	defer z.Close()

	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp, Documents: z})
	require.NoError(t, err)
	defer ec.Close(ctx)
	lib := newLibrary()

	miss, err := ec.Export(ctx, []string{"a", "b"}, true, lib.load)
	require.NoError(t, err)
	hit, err := ec.Export(ctx, []string{"a", "b"}, true, lib.load)
	require.NoError(t, err)
	assert.Equal(t, miss, hit)
	assert.Equal(t, 1, lib.loads)
}

func TestCachedDocumentsKeepFreeText(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	ic, err := NewImportCache(Options{Namespace: "t", Provider: mp})
	if err != nil {
		t.Fatalf("NewImportCache: %v", err)
	}
	defer ic.Close(ctx)
	ec, err := NewExportCache(Options{Namespace: "t", Provider: mp})
	if err != nil {
		t.Fatalf("NewExportCache: %v", err)
	}
	defer ec.Close(ctx)

	src := []byte(`<RECIPE><NAME> Tripel </NAME><NOTES>step 1&#xD;
step 2</NOTES></RECIPE>`)
	load := func(ctx context.Context, _ []string) ([]brewxml.Recipe, error) {
		return ic.Decode(ctx, src)
	}

	out, err := ec.Export(ctx, []string{"tripel"}, false, load)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	for i := 0; i < 2; i++ {
		rs, err := ic.Decode(ctx, out)
		if err != nil {
			t.Fatalf("Decode #%d: %v", i, err)
		}
		if rs[0].Name != " Tripel " || rs[0].Notes != "step 1\r\nstep 2" {
			t.Fatalf("Decode #%d: name=%q notes=%q", i, rs[0].Name, rs[0].Notes)
		}
	}
	if got := mp.len(); got != 3 {
		t.Fatalf("provider entries = %d, want 3 (source, export, exported)", got)
	}
}
