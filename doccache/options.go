package doccache

import (
	"time"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
	"github.com/unkn0wn-root/brewxml/genstore"
	pr "github.com/unkn0wn-root/brewxml/provider"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultGenRetention = 30 * 24 * time.Hour
	defaultSweep        = time.Hour
)

// Options configure ImportCache and ExportCache.
type Options struct {
	// Namespace scopes every storage key; required.
	Namespace string
	// Provider stores the frames; required. Close closes it.
	Provider pr.Provider

	// Codec decodes and encodes documents. If nil, one is built from
	// Logger and Hooks with default options.
	Codec *brewxml.Codec
	// Payload serializes decoded recipes inside import entries.
	// If nil, Msgpack wrapped in Zstd is used.
	Payload codec.Codec[[]brewxml.Recipe]
	// Documents stores encoded documents inside export entries. If nil,
	// codec.Bytes is used; wrap it in codec.Zstd to compress.
	Documents codec.Codec[[]byte]

	// GenStore holds per-recipe generations for ExportCache. If nil, an
	// in-process LocalGenStore is created (single replica only).
	GenStore        genstore.GenStore
	CleanupInterval time.Duration // local gen sweep; 0 => 1h
	GenRetention    time.Duration // local gen retention; 0 => 30d

	Logger brewxml.Logger // if nil, NopLogger is used
	Hooks  brewxml.Hooks  // if nil, NopHooks is used

	TTL      time.Duration // entry TTL; 0 => 10m
	Disabled bool          // pass-through mode; nothing is read or written
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
