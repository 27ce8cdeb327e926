// Package codec holds the byte codecs used to store decoded recipes and
// encoded documents in a cache provider.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
