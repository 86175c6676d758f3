package e2e_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/nbox-sh/nbox-cli/nboxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startStore(t *testing.T) (*nboxtest.Server, *clientcli.Client) {
	t.Helper()

	store := nboxtest.New()
	srv := httptest.NewServer(store.Router())
	t.Cleanup(srv.Close)

	client, err := clientcli.New(&clientcli.Config{
		URL:   srv.URL,
		Token: store.IssueToken(),
	})
	require.NoError(t, err)

	return store, client
}

// TestE2E_LoginAndEntryLifecycle exercises login, create, read, and delete
// against the wire contract.
func TestE2E_LoginAndEntryLifecycle(t *testing.T) {
	store := nboxtest.New()
	store.SeedUser("alice", "s3cret")
	srv := httptest.NewServer(store.Router())
	defer srv.Close()

	ctx := context.Background()

	token, err := clientcli.Login(ctx, srv.URL, "alice", "s3cret")
	require.NoError(t, err)

	client, err := clientcli.New(&clientcli.Config{URL: srv.URL, Token: token})
	require.NoError(t, err)
	require.NoError(t, client.ValidateToken(ctx))

	require.NoError(t, client.CreateEntry(ctx, "/app/db-host", "localhost", false))

	entry, err := client.EntryByKey(ctx, "app/db-host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", entry.Value)

	require.NoError(t, client.DeleteEntry(ctx, "app/db-host"))

	_, err = client.EntryByKey(ctx, "app/db-host")
	assert.ErrorIs(t, err, nbox.ErrNotFound)
}

// TestE2E_DotenvImport drives the whole import pipeline over HTTP: parse,
// secure selection, changeset lookups, confirmation, one batch write.
func TestE2E_DotenvImport(t *testing.T) {
	store, client := startStore(t)
	store.SeedEntry(nbox.Entry{Key: "app/env/db_host", Value: "old-host"})

	var renderedRows []nbox.ChangesetRow
	imp := &nbox.Importer{
		Store: client,
		Render: func(rows []nbox.ChangesetRow, withOld bool) error {
			renderedRows = rows
			assert.True(t, withOld)
			return nil
		},
		Confirm:      func() (bool, error) { return true, nil },
		SelectSecure: func([]string) []string { return []string{"db-pass"} },
	}

	input := "DB_HOST=new-host\nDB_PASS=\"hunter2\"\n"
	n, err := imp.Run(context.Background(), strings.NewReader(input), nbox.ImportOptions{
		Format:   nbox.FormatDotenv,
		BasePath: "app/env",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// the diff preview read the underscore form and found the old value
	assert.Equal(t, []string{"app/env/db_host", "app/env/db_pass"}, store.KeyLookups())
	require.Len(t, renderedRows, 2)
	assert.Equal(t, "old-host", renderedRows[0].OldValue)
	assert.Empty(t, renderedRows[1].OldValue)

	// the write used the dash form in a single batch
	batches := store.Batches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)

	host, ok := store.Entry("app/env/db-host")
	require.True(t, ok)
	assert.Equal(t, "new-host", host.Value)

	pass, ok := store.Entry("app/env/db-pass")
	require.True(t, ok)
	assert.True(t, pass.Secure)

	// the old underscore entry is untouched
	_, ok = store.Entry("app/env/db_host")
	assert.True(t, ok)
}

// TestE2E_CancelledImport confirms a declined gate writes nothing and is
// not reported as a failure.
func TestE2E_CancelledImport(t *testing.T) {
	store, client := startStore(t)

	imp := &nbox.Importer{
		Store:   client,
		Render:  func([]nbox.ChangesetRow, bool) error { return nil },
		Confirm: func() (bool, error) { return false, nil },
	}

	_, err := imp.Run(context.Background(), strings.NewReader(`[{"key": "app/a", "value": "1"}]`), nbox.ImportOptions{
		Format: nbox.FormatNbox,
	})
	assert.ErrorIs(t, err, nbox.ErrCancelled)
	assert.Empty(t, store.Batches())
}

// TestE2E_ExpiredToken checks the expiry signal travels from the wire to
// the helper commands key on.
func TestE2E_ExpiredToken(t *testing.T) {
	store, client := startStore(t)
	store.TokenExpired = true

	err := client.ValidateToken(context.Background())
	require.Error(t, err)
	assert.True(t, clientcli.IsTokenExpired(err))
}

// TestE2E_SecureRoundtrip stores a secure entry and resolves its secret
// through a prefix listing with decryption.
func TestE2E_SecureRoundtrip(t *testing.T) {
	store, client := startStore(t)
	ctx := context.Background()

	store.SeedSecret("ref-42", "plaintext")
	require.NoError(t, client.CreateEntry(ctx, "app/db-pass", "ref-42", true))

	entries, err := client.EntriesByPrefix(ctx, "app/", true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plaintext", entries[0].Value)
}
