package codec

// Bytes is an identity codec for []byte values, used for payloads that are
// already serialized (such as encoded BeerXML documents). Decode returns a
// copy so callers can never mutate bytes a provider still holds.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}
