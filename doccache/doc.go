// Package doccache puts a provider-backed cache in front of brewxml for
// upload and download handlers.
//
// ImportCache memoizes Decode by document content: the same bytes uploaded
// twice are parsed once. Failed decodes are never cached.
//
// ExportCache memoizes Encode for a set of recipe IDs. Every entry records
// the generation of each member recipe it was built from; Invalidate(id)
// bumps that recipe's generation and every cached document that contains it
// turns stale on its next read. Writes are compare-and-set: if any member
// generation moves while the document is being built, the write is skipped.
//
// Entries are framed by internal/wire. Corrupt, foreign or undecodable
// entries are deleted on read and the call falls back to the codec.
package doccache
