// Package nbox implements the entry synchronization core of the nbox
// command-line client: key normalization, input-format parsing, changeset
// construction, and the bulk-import workflow.
//
// The package is transport-agnostic. Remote state is reached through the
// EntryStore interface; the clientcli package provides the HTTP
// implementation. Interactive capabilities (secure-field selection,
// confirmation, rendering) are injected as callbacks so the core can be
// exercised without a terminal.
//
// # Import pipeline
//
// A bulk import parses an input file into entry drafts, optionally probes
// the store for each draft's current value to build a changeset preview,
// renders the result, asks for confirmation, and submits all drafts in a
// single batch call:
//
//	imp := &nbox.Importer{
//		Store:   client,
//		Render:  renderRows,
//		Confirm: confirmProceed,
//	}
//
//	n, err := imp.Run(ctx, file, nbox.ImportOptions{
//		Format:   nbox.FormatDotenv,
//		BasePath: "app/env",
//	})
//
// A declined confirmation returns ErrCancelled, which callers should treat
// as a clean exit rather than a failure.
package nbox
