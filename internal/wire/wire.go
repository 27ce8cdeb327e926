// Package wire frames cached payloads together with the generations of the
// recipes they were built from.
//
//	magic(4) | ver(1) | n(u16 be)
//	keyLen(u16 be) | key(keyLen) | gen(u64 be)      * n
//	plen(u32 be) | payload(plen)
//
// Import entries are content addressed and carry n=0. Export entries carry
// one member per recipe ID in the exported document.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("brewxml: corrupt cache entry")
	magic4     = [...]byte{'B', 'X', 'C', 'E'}
)

// Member is one recipe ID and the generation observed when the entry was
// built.
type Member struct {
	Key string
	Gen uint64
}

// Encode frames payload with members. It fails only on keys or counts that
// do not fit the frame.
func Encode(members []Member, payload []byte) ([]byte, error) {
	if len(members) > math.MaxUint16 {
		return nil, fmt.Errorf("wire: too many members: %d", len(members))
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("wire: payload too large: %d", len(payload))
	}
	total := 4 + 1 + 2 + 4 + len(payload)
	for _, m := range members {
		if l := len(m.Key); l == 0 || l > math.MaxUint16 {
			return nil, fmt.Errorf("wire: invalid member key length %d", l)
		}
		total += 2 + len(m.Key) + 8
	}

	var buf bytes.Buffer
	buf.Grow(total)
	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint16(u2[:], uint16(len(members)))
	buf.Write(u2[:])
	for _, m := range members {
		binary.BigEndian.PutUint16(u2[:], uint16(len(m.Key)))
		buf.Write(u2[:])
		buf.WriteString(m.Key)
		binary.BigEndian.PutUint64(u8[:], m.Gen)
		buf.Write(u8[:])
	}

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])
	buf.Write(payload)
	return buf.Bytes(), nil
}

// Decode parses a frame. The returned payload aliases b. Any truncation,
// header mismatch or trailing byte yields ErrCorrupt.
func Decode(b []byte) (members []Member, payload []byte, err error) {
	const hdr = 4 + 1 + 2
	if len(b) < hdr || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return nil, nil, ErrCorrupt
	}
	off := 5

	n := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2

	if n > 0 {
		members = make([]Member, 0, n)
	}
	for i := 0; i < n; i++ {
		if off+2 > len(b) {
			return nil, nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if klen == 0 || klen > len(b)-off {
			return nil, nil, ErrCorrupt
		}
		key := string(b[off : off+klen])
		off += klen

		if off+8 > len(b) {
			return nil, nil, ErrCorrupt
		}
		gen := binary.BigEndian.Uint64(b[off : off+8])
		off += 8
		members = append(members, Member{Key: key, Gen: gen})
	}

	if off+4 > len(b) {
		return nil, nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if plen != len(b)-off {
		return nil, nil, ErrCorrupt
	}
	return members, b[off:], nil
}
