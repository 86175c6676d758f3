package nbox

import (
	"context"
	"fmt"
)

// Entry is a single key/value record in the store. For secure entries the
// value holds a reference to a secret rather than the plaintext; resolving
// it requires a separate secret lookup.
//
// Values are whatever JSON scalar the input carried (string, number, bool),
// so Value is deliberately loosely typed. Use FormatValue for display.
type Entry struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Secure bool   `json:"secure"`
}

// ChangesetRow pairs a draft against the current remote value at its lookup
// key. OldValue is empty exactly when no remote entry exists. Rows are a
// display artifact for the confirmation step and are never persisted.
type ChangesetRow struct {
	Key      string
	OldValue string
	NewValue any
	Secure   bool
}

// EntryStore is the remote entry API surface the import pipeline needs.
// *clientcli.Client satisfies it.
type EntryStore interface {
	// EntryByKey returns the entry stored at key, or an error wrapping
	// ErrNotFound when no entry exists there.
	EntryByKey(ctx context.Context, key string) (*Entry, error)

	// CreateEntries creates or updates all entries in a single batch call.
	CreateEntries(ctx context.Context, entries []Entry) error
}

// FormatValue renders an entry value for display. Nil values render as the
// empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
