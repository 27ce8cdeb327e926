package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses the output of Inner. BeerXML and recipe snapshots are
// highly repetitive text, so cached entries shrink several times over.
// Construct with NewZstd; the encoder and decoder are safe for concurrent
// use through EncodeAll/DecodeAll.
type Zstd[V any] struct {
	inner Codec[V]
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

var _ Codec[[]byte] = (*Zstd[[]byte])(nil)

// NewZstd wraps inner. maxDecoded bounds the decompressed size (0 => 64 MiB).
func NewZstd[V any](inner Codec[V], maxDecoded uint64) (*Zstd[V], error) {
	if inner == nil {
		return nil, fmt.Errorf("codec: zstd inner codec is required")
	}
	if maxDecoded == 0 {
		maxDecoded = 64 << 20
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecoded), zstd.WithDecoderConcurrency(0))
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	return &Zstd[V]{inner: inner, enc: enc, dec: dec}, nil
}

func (z *Zstd[V]) Encode(v V) ([]byte, error) {
	raw, err := z.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return z.enc.EncodeAll(raw, nil), nil
}

func (z *Zstd[V]) Decode(b []byte) (V, error) {
	raw, err := z.dec.DecodeAll(b, nil)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("codec: zstd: %w", err)
	}
	return z.inner.Decode(raw)
}

// Close releases the decoder's goroutines.
func (z *Zstd[V]) Close() {
	z.dec.Close()
	_ = z.enc.Close()
}
