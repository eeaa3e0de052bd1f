// Package store provides the document-store abstraction the service persists
// through. Documents are JSON records in named collections, keyed by a single
// string (the user's or applicant's email). Update applies a merge-patch:
// only the named fields change, other attributes on the record are untouched.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document exists under the given key.
var ErrNotFound = errors.New("store: document not found")

// Fields is a partial-update value: field name (JSON name) to new value.
type Fields map[string]any

// Store is implementable against any key-value or document backend.
type Store interface {
	// Get unmarshals the document at key into out.
	Get(ctx context.Context, collection, key string, out any) error
	// Put writes the full document at key, replacing any existing one.
	Put(ctx context.Context, collection, key string, doc any) error
	// Update merge-patches the document at key. Returns ErrNotFound when the
	// document does not exist.
	Update(ctx context.Context, collection, key string, fields Fields) error
	Close() error
}
