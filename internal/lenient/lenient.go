// Package lenient extracts leaf values from an XML element without ever
// failing. A missing leaf, an empty leaf or a leaf whose text cannot be
// coerced resolves to the caller's default. Coercion failures are reported
// through an optional callback so callers can log or count them.
package lenient

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// FallbackFunc is called when a present, non-empty leaf could not be
// coerced and its default was used instead.
type FallbackFunc func(field, raw string)

// Reader reads the immediate children of one element.
type Reader struct {
	el       *etree.Element
	fallback FallbackFunc
}

// New returns a Reader over el. fallback may be nil.
func New(el *etree.Element, fallback FallbackFunc) Reader {
	return Reader{el: el, fallback: fallback}
}

// Has reports whether a child element named tag exists.
func (r Reader) Has(tag string) bool {
	return r.el != nil && r.el.SelectElement(tag) != nil
}

// leaf returns the text of the first child named tag as written. ok is
// false when the child is missing or its text is empty or whitespace only.
func (r Reader) leaf(tag string) (string, bool) {
	if r.el == nil {
		return "", false
	}
	child := r.el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	s := child.Text()
	return s, strings.TrimSpace(s) != ""
}

// raw is leaf trimmed, for coercion.
func (r Reader) raw(tag string) (string, bool) {
	s, ok := r.leaf(tag)
	return strings.TrimSpace(s), ok
}

func (r Reader) miss(tag, raw string) {
	if r.fallback != nil {
		r.fallback(tag, raw)
	}
}

// Text returns the leaf text untrimmed, or "" when absent or blank.
func (r Reader) Text(tag string) string {
	if s, ok := r.leaf(tag); ok {
		return s
	}
	return ""
}

// Float returns the leaf as a finite float64, or nil.
func (r Reader) Float(tag string) *float64 {
	s, ok := r.raw(tag)
	if !ok {
		return nil
	}
	f, ok := parseFloat(s)
	if !ok {
		r.miss(tag, s)
		return nil
	}
	return &f
}

// Int returns the leaf as an int, or nil. Integral decimals such as "2.0"
// are accepted; values outside the int32 range are not.
func (r Reader) Int(tag string) *int {
	s, ok := r.raw(tag)
	if !ok {
		return nil
	}
	n, ok := parseInt(s)
	if !ok {
		r.miss(tag, s)
		return nil
	}
	return &n
}

// IntOr is Int with a non-pointer default.
func (r Reader) IntOr(tag string, def int) int {
	if n := r.Int(tag); n != nil {
		return *n
	}
	return def
}

// Bool returns true when the leaf is one of TRUE, YES or 1 (any case).
// Anything else, including absence, is false.
func (r Reader) Bool(tag string) bool {
	if b := r.OptBool(tag); b != nil {
		return *b
	}
	return false
}

// OptBool is the tri-state form of Bool: nil when the leaf is absent.
func (r Reader) OptBool(tag string) *bool {
	s, ok := r.raw(tag)
	if !ok {
		return nil
	}
	b, known := parseBool(s)
	if !known {
		r.miss(tag, s)
	}
	return &b
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int, bool) {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), true
	}
	f, ok := parseFloat(s)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// parseBool maps a token to its value. known is false for tokens outside
// the recognised true/false sets; those still resolve to false.
func parseBool(s string) (v, known bool) {
	switch strings.ToUpper(s) {
	case "TRUE", "YES", "1":
		return true, true
	case "FALSE", "NO", "0":
		return false, true
	default:
		return false, false
	}
}
