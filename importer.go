package nbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ImportFormat selects which parser handles the input file.
type ImportFormat string

// Supported input formats.
const (
	// FormatNbox is a JSON list of {key, value, secure} objects.
	FormatNbox ImportFormat = "nbox"
	// FormatDotenv is a line-oriented KEY=VALUE environment file.
	FormatDotenv ImportFormat = "dotenv"
)

// Valid reports whether f names a known parser.
func (f ImportFormat) Valid() bool {
	return f == FormatNbox || f == FormatDotenv
}

// ImportOptions configures a bulk import run.
type ImportOptions struct {
	Format   ImportFormat
	BasePath string // required for dotenv input, ignored otherwise
	// NoChangeset skips the per-draft remote lookups and renders the
	// drafts as-is before confirmation.
	NoChangeset bool
}

// Importer drives the bulk-import pipeline:
// parse, optionally build a changeset, render, confirm, apply.
//
// Store performs the remote calls. Render and Confirm are the terminal
// capabilities; SelectSecure is only consulted for dotenv input. All three
// are plain funcs so tests can supply fixed answers.
type Importer struct {
	Store EntryStore

	// Render displays rows for review before the confirmation gate.
	// withOld is false on the no-changeset fast path, where rows carry no
	// old values.
	Render func(rows []ChangesetRow, withOld bool) error

	// Confirm is the yes/no gate before the batch write. Returning false
	// aborts the run with ErrCancelled.
	Confirm func() (bool, error)

	SelectSecure SecureSelector
}

// Run executes one import. It returns the number of drafts submitted in
// the batch call, which is also the count reported on success regardless
// of how many were truly new versus updated.
//
// The whole set is submitted in exactly one batch call; a remote failure
// aborts the run with the transport error and no per-entry accounting is
// attempted. A declined confirmation returns ErrCancelled and performs no
// write.
func (imp *Importer) Run(ctx context.Context, input io.Reader, opts ImportOptions) (int, error) {
	if !opts.Format.Valid() {
		return 0, fmt.Errorf("%w: unknown input type %q", ErrInvalidInput, opts.Format)
	}
	if opts.Format == FormatDotenv && opts.BasePath == "" {
		return 0, ErrBasePathRequired
	}

	content, err := io.ReadAll(input)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	var drafts []Entry
	switch opts.Format {
	case FormatNbox:
		drafts, err = ParseEntryList(content)
		if err != nil {
			return 0, err
		}
	case FormatDotenv:
		drafts = ParseDotenv(string(content), opts.BasePath, imp.SelectSecure)
	}

	slog.Debug("parsed import input", "format", opts.Format, "drafts", len(drafts))

	var rows []ChangesetRow
	if opts.NoChangeset {
		rows = DraftRows(drafts)
	} else {
		rows, err = BuildChangeset(ctx, imp.Store, drafts)
		if err != nil {
			return 0, fmt.Errorf("build changeset: %w", err)
		}
	}

	if err := imp.Render(rows, !opts.NoChangeset); err != nil {
		return 0, err
	}

	ok, err := imp.Confirm()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrCancelled
	}

	if err := imp.Store.CreateEntries(ctx, drafts); err != nil {
		return 0, err
	}

	return len(drafts), nil
}
