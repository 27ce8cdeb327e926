package brewxml

import (
	"github.com/unkn0wn-root/brewxml/codec"
)

// DocumentCodec adapts a Codec to codec.Codec[[]Recipe], so BeerXML can be
// used wherever a byte codec is expected (for example as a cache payload
// format). Decode keeps the best-effort semantics of Codec.Decode.
type DocumentCodec struct {
	c      *Codec
	pretty bool
}

var _ codec.Codec[[]Recipe] = DocumentCodec{}

// Documents returns a DocumentCodec that encodes in pretty or compact form.
func (c *Codec) Documents(pretty bool) DocumentCodec {
	return DocumentCodec{c: c, pretty: pretty}
}

func (d DocumentCodec) Encode(rs []Recipe) ([]byte, error) { return d.c.Encode(rs, d.pretty) }
func (d DocumentCodec) Decode(b []byte) ([]Recipe, error)  { return d.c.Decode(b) }
