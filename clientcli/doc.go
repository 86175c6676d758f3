// Package clientcli provides the HTTP client for the nbox entry store and
// the persisted credentials configuration.
//
// # Basic Usage
//
// Load the saved credentials and create a client:
//
//	cfg, err := clientcli.LoadConfig(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entry, err := client.EntryByKey(ctx, "app/db-host")
//
// # Authentication
//
// Login exchanges a username and password for a bearer token:
//
//	token, err := clientcli.Login(ctx, cfg.URL, username, password)
//
// The token is persisted in the credentials file and sent as an
// Authorization header on every subsequent request. ValidateToken probes
// the server before real work so an expired token fails fast; use
// IsTokenExpired on any returned error to detect the expiry signal.
//
// # Errors
//
// Any non-200 response becomes an *APIError carrying the status code and
// body verbatim. An absent entry (a JSON null body) is reported as
// nbox.ErrNotFound.
package clientcli
