// Package storage defines persistence contracts for user-data documents.
//
// A document is one of three independent JSON containers persisted as a
// whole file each. Backends load and save entire documents; there is no
// partial read or incremental write.
package storage

import "context"

// Store persists user-data documents.
type Store interface {
	// Ensure creates the data directory and any missing document file with
	// its default content. Every operation calls it before touching a
	// document, so a deleted file is repaired on the next call rather than
	// only at startup.
	Ensure(ctx context.Context) error

	// Load reads and decodes one whole document.
	Load(ctx context.Context, doc Document) (*Object, error)

	// Save encodes and rewrites one whole document.
	Save(ctx context.Context, doc Document, root *Object) error
}
