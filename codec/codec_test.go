package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name   string   `json:"name"`
	Alpha  *float64 `json:"alpha,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Mashed bool     `json:"mashed"`
}

func ptr[T any](v T) *T { return &v }

func TestSnapshotCodecsPreserveValues(t *testing.T) {
	want := []snapshot{
		{Name: "Cascade", Alpha: ptr(5.5), Tags: []string{"aroma"}},
		{Name: "Pale Malt", Mashed: true},
	}

	codecs := map[string]Codec[[]snapshot]{
		"json":    JSON[[]snapshot]{},
		"msgpack": Msgpack[[]snapshot]{},
		"cbor":    MustCBOR[[]snapshot](CBOROptions{Deterministic: true}),
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			b, err := c.Encode(want)
			require.NoError(t, err)
			got, err := c.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestMsgpackUsesJSONNames(t *testing.T) {
	b, err := Msgpack[snapshot]{}.Encode(snapshot{Name: "Cascade"})
	require.NoError(t, err)
	assert.True(t, bytes.Contains(b, []byte("name")))
	assert.False(t, bytes.Contains(b, []byte("Name")))
	assert.False(t, bytes.Contains(b, []byte("alpha")), "nil pointer omitted")
}

func TestCBORDeterministicIsStable(t *testing.T) {
	c := MustCBOR[map[string]int](CBOROptions{Deterministic: true})
	a, err := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		b, err := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	c := Limit[[]byte]{Inner: Bytes{}, MaxDecode: 4}

	_, err := c.Decode([]byte("12345"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))

	got, err := c.Decode([]byte("1234"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1234"), got)

	unlimited := Limit[[]byte]{Inner: Bytes{}}
	_, err = unlimited.Decode(bytes.Repeat([]byte("x"), 1<<16))
	require.NoError(t, err)
}

func TestBytesDecodeCopies(t *testing.T) {
	src := []byte("<RECIPES/>")
	got, err := Bytes{}.Decode(src)
	require.NoError(t, err)
	got[0] = '!'
	assert.Equal(t, byte('<'), src[0])

	none, err := Bytes{}.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestZstdCompressesRepetitiveDocuments(t *testing.T) {
	z, err := NewZstd[[]byte](Bytes{}, 0)
	require.NoError(t, err)
	t.Cleanup(z.Close)

	doc := bytes.Repeat([]byte("<HOP><NAME>Cascade</NAME><ALPHA>5.5</ALPHA></HOP>"), 200)
	enc, err := z.Encode(doc)
	require.NoError(t, err)
	assert.Less(t, len(enc), len(doc)/4)

	dec, err := z.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, doc, dec)

	_, err = z.Decode([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestZstdWrapsSnapshotCodec(t *testing.T) {
	z, err := NewZstd[[]snapshot](Msgpack[[]snapshot]{}, 0)
	require.NoError(t, err)
	t.Cleanup(z.Close)

	want := []snapshot{{Name: "Wyeast 1056", Tags: []string{"clean"}}}
	b, err := z.Encode(want)
	require.NoError(t, err)
	got, err := z.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewZstdRequiresInner(t *testing.T) {
	_, err := NewZstd[[]byte](nil, 0)
	assert.Error(t, err)
}
