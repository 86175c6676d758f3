package nbox_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter(store *fakeStore) *nbox.Importer {
	return &nbox.Importer{
		Store:   store,
		Render:  func([]nbox.ChangesetRow, bool) error { return nil },
		Confirm: func() (bool, error) { return true, nil },
	}
}

func TestImporterRun(t *testing.T) {
	t.Run("nbox format submits one batch with all drafts", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)

		input := `[
			{"key": "app/a", "value": "1"},
			{"key": "app/b", "value": "2", "secure": true},
			{"key": "app/c", "value": "3"}
		]`

		n, err := imp.Run(context.Background(), strings.NewReader(input), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		require.Len(t, store.batches, 1)
		assert.Len(t, store.batches[0], 3)
	})

	t.Run("changeset mode performs one lookup per draft", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)

		input := `[{"key": "app/a", "value": "1"}, {"key": "app/b", "value": "2"}]`

		_, err := imp.Run(context.Background(), strings.NewReader(input), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"app/a", "app/b"}, store.lookups)
	})

	t.Run("no-changeset mode performs zero lookups", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)

		input := `[{"key": "app/a", "value": "1"}, {"key": "app/b", "value": "2"}]`

		n, err := imp.Run(context.Background(), strings.NewReader(input), nbox.ImportOptions{
			Format:      nbox.FormatNbox,
			NoChangeset: true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Empty(t, store.lookups)
	})

	t.Run("declined confirmation writes nothing", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)
		imp.Confirm = func() (bool, error) { return false, nil }

		_, err := imp.Run(context.Background(), strings.NewReader(`[{"key": "a", "value": "1"}]`), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		assert.ErrorIs(t, err, nbox.ErrCancelled)
		assert.Empty(t, store.batches)
	})

	t.Run("dotenv format builds keys under base path", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)
		imp.SelectSecure = func([]string) []string { return []string{"db-pass"} }

		input := "DB_HOST=localhost\nDB_PASS=\"hunter2\"\n"

		n, err := imp.Run(context.Background(), strings.NewReader(input), nbox.ImportOptions{
			Format:   nbox.FormatDotenv,
			BasePath: "app/env",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		require.Len(t, store.batches, 1)
		batch := store.batches[0]
		assert.Equal(t, "app/env/db-host", batch[0].Key)
		assert.False(t, batch[0].Secure)
		assert.Equal(t, "app/env/db-pass", batch[1].Key)
		assert.Equal(t, "hunter2", batch[1].Value)
		assert.True(t, batch[1].Secure)
	})

	t.Run("dotenv without base path is a usage error", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)

		_, err := imp.Run(context.Background(), strings.NewReader("A=1"), nbox.ImportOptions{
			Format: nbox.FormatDotenv,
		})
		assert.ErrorIs(t, err, nbox.ErrBasePathRequired)
		assert.Empty(t, store.lookups)
		assert.Empty(t, store.batches)
	})

	t.Run("unknown format fails before any store call", func(t *testing.T) {
		store := newFakeStore()
		imp := newTestImporter(store)

		_, err := imp.Run(context.Background(), strings.NewReader("A=1"), nbox.ImportOptions{
			Format: "toml",
		})
		assert.ErrorIs(t, err, nbox.ErrInvalidInput)
		assert.Empty(t, store.lookups)
		assert.Empty(t, store.batches)
	})

	t.Run("parse failure aborts before rendering", func(t *testing.T) {
		store := newFakeStore()
		rendered := false
		imp := newTestImporter(store)
		imp.Render = func([]nbox.ChangesetRow, bool) error {
			rendered = true
			return nil
		}

		_, err := imp.Run(context.Background(), strings.NewReader(`{"not": "a list"}`), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		assert.ErrorIs(t, err, nbox.ErrUnsupportedFormat)
		assert.False(t, rendered)
	})

	t.Run("batch failure surfaces the store error", func(t *testing.T) {
		store := newFakeStore()
		store.createErr = errors.New("500 upstream")
		imp := newTestImporter(store)

		_, err := imp.Run(context.Background(), strings.NewReader(`[{"key": "a", "value": "1"}]`), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		assert.ErrorIs(t, err, store.createErr)
	})

	t.Run("render sees old values only in changeset mode", func(t *testing.T) {
		store := newFakeStore(nbox.Entry{Key: "app/a", Value: "old"})

		var gotWithOld bool
		var gotRows []nbox.ChangesetRow
		imp := newTestImporter(store)
		imp.Render = func(rows []nbox.ChangesetRow, withOld bool) error {
			gotRows = rows
			gotWithOld = withOld
			return nil
		}

		_, err := imp.Run(context.Background(), strings.NewReader(`[{"key": "app/a", "value": "new"}]`), nbox.ImportOptions{
			Format: nbox.FormatNbox,
		})
		require.NoError(t, err)
		assert.True(t, gotWithOld)
		require.Len(t, gotRows, 1)
		assert.Equal(t, "old", gotRows[0].OldValue)
	})
}
