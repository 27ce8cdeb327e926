package util

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ContentKey returns prefix + ":" + hex SHA-256 of doc. Identical uploads map
// to the same key regardless of who sent them.
func ContentKey(prefix string, doc []byte) string {
	sum := sha256.Sum256(doc)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// SetKeySorted returns a deterministic key for a set of IDs, which must
// already be sorted and de-duplicated (see SortedUnique). The hash is
// truncated to 16 hex chars.
func SetKeySorted(prefix string, sorted []string) string {
	h := sha256.New()
	for i, id := range sorted {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(id))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

// SortedUnique returns a sorted copy of ids without duplicates.
func SortedUnique(ids []string) []string {
	out := lo.Uniq(ids)
	slices.Sort(out)
	return out
}

// Redact shortens a storage key for logs.
func Redact(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 && len(key)-i > 9 {
		return key[:i+9]
	}
	return key
}
