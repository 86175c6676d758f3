package nbox

import (
	"context"
	"errors"
	"fmt"
)

// BuildChangeset produces one row per draft, in input order, pairing each
// draft against the current remote value at its lookup key (see LookupKey
// for the leaf-segment transform). A missing remote entry leaves OldValue
// empty; any other lookup failure aborts the build.
//
// This performs exactly one store lookup per draft.
func BuildChangeset(ctx context.Context, store EntryStore, drafts []Entry) ([]ChangesetRow, error) {
	rows := make([]ChangesetRow, 0, len(drafts))
	for _, draft := range drafts {
		row := ChangesetRow{
			Key:      NormalizeKey(draft.Key),
			NewValue: draft.Value,
			Secure:   draft.Secure,
		}

		existing, err := store.EntryByKey(ctx, LookupKey(draft.Key))
		switch {
		case errors.Is(err, ErrNotFound):
			// no remote entry, OldValue stays empty
		case err != nil:
			return nil, fmt.Errorf("look up %s: %w", draft.Key, err)
		default:
			row.OldValue = FormatValue(existing.Value)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// DraftRows converts drafts straight into rows without any remote lookups.
// Used by the no-changeset fast path, where the caller trades the old/new
// preview for speed.
func DraftRows(drafts []Entry) []ChangesetRow {
	rows := make([]ChangesetRow, len(drafts))
	for i, draft := range drafts {
		rows[i] = ChangesetRow{
			Key:      NormalizeKey(draft.Key),
			NewValue: draft.Value,
			Secure:   draft.Secure,
		}
	}
	return rows
}
