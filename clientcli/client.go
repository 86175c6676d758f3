package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	nbox "github.com/nbox-sh/nbox-cli"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs entry operations against an nbox server. All requests
// carry the bearer token from the config.
type Client struct {
	config     *Config
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options. The config
// must carry both a store URL and a token; login and configuration are
// separate flows that do not go through a Client.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	if cfg.Token == "" {
		return nil, ErrNoToken
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListedEntry is an entry as returned by a prefix listing. When a secure
// value fails to decrypt during a --decrypt listing, the failure is
// recorded per entry instead of failing the whole listing.
type ListedEntry struct {
	nbox.Entry
	DecryptionError string `json:"decryption_error,omitempty"`
}

// Secret is a resolved secure value.
type Secret struct {
	Key   string `json:"key,omitempty"`
	Value any    `json:"value"`
}

// loginResponse mirrors the JSON response from the auth endpoint. Servers
// answer with either field name.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// Login exchanges a username and password for a bearer token. It stands
// apart from Client because it is the one call made without a token.
func Login(ctx context.Context, serverURL, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal credentials: %w", err)
	}

	endpoint := strings.TrimSuffix(serverURL, "/") + "/api/auth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	token := lr.AccessToken
	if token == "" {
		token = lr.Token
	}
	if token == "" {
		return "", errors.New("parse response: no token in login response")
	}

	return token, nil
}

// ValidateToken probes the server with the saved token. Used right after
// client construction so an expired or revoked token fails before any real
// work starts.
func (c *Client) ValidateToken(ctx context.Context) error {
	_, err := c.get(ctx, "entry/prefix", "login")
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	return nil
}

// EntryByKey returns the entry stored at key. A leading slash on the key
// is stripped. An absent entry (the server answers 200 with a null body)
// is reported as nbox.ErrNotFound.
func (c *Client) EntryByKey(ctx context.Context, key string) (*nbox.Entry, error) {
	body, err := c.get(ctx, "entry/key", strings.TrimLeft(key, "/"))
	if err != nil {
		return nil, err
	}

	var entry *nbox.Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", key, nbox.ErrNotFound)
	}

	return entry, nil
}

// EntriesByPrefix lists every entry under a path prefix. With decrypt set,
// each secure entry's value is resolved individually; a resolve failure is
// recorded on that entry rather than failing the listing.
func (c *Client) EntriesByPrefix(ctx context.Context, prefix string, decrypt bool) ([]ListedEntry, error) {
	body, err := c.get(ctx, "entry/prefix", prefix)
	if err != nil {
		return nil, err
	}

	var entries []ListedEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if decrypt {
		for i := range entries {
			if !entries[i].Secure {
				continue
			}
			secret, err := c.SecretByKey(ctx, nbox.FormatValue(entries[i].Value))
			if err != nil {
				entries[i].DecryptionError = err.Error()
				continue
			}
			entries[i].Value = secret.Value
		}
	}

	return entries, nil
}

// SecretByKey resolves a secure value's plaintext by its secret reference.
func (c *Client) SecretByKey(ctx context.Context, ref string) (*Secret, error) {
	body, err := c.get(ctx, "entry/secret-value", ref)
	if err != nil {
		return nil, err
	}

	var secret *Secret
	if err := json.Unmarshal(body, &secret); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if secret == nil {
		return nil, fmt.Errorf("secret %s: %w", ref, nbox.ErrNotFound)
	}

	return secret, nil
}

// DeleteEntry deletes the entry stored at key.
func (c *Client) DeleteEntry(ctx context.Context, key string) error {
	_, err := c.do(ctx, http.MethodDelete, "entry/key", strings.TrimLeft(key, "/"), nil)
	return err
}

// CreateEntry creates or updates a single entry. A leading slash on the
// key is stripped; the key is otherwise written as given.
func (c *Client) CreateEntry(ctx context.Context, key string, value any, secure bool) error {
	return c.CreateEntries(ctx, []nbox.Entry{{
		Key:    strings.TrimLeft(key, "/"),
		Value:  value,
		Secure: secure,
	}})
}

// CreateEntries creates or updates all entries in a single batch call.
// The server's batch endpoint is authoritative for what was written; no
// per-entry accounting happens here.
func (c *Client) CreateEntries(ctx context.Context, entries []nbox.Entry) error {
	_, err := c.do(ctx, http.MethodPost, "entry", "", entries)
	return err
}

// get issues a GET with the standard ?v= query parameter.
func (c *Client) get(ctx context.Context, endpoint, v string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, v, nil)
}

// do issues one authenticated request and returns the response body. Any
// non-200 status becomes an *APIError with the body verbatim.
func (c *Client) do(ctx context.Context, method, endpoint, v string, payload any) ([]byte, error) {
	reqURL := c.baseURL + "/api/" + endpoint
	if v != "" {
		reqURL += "?" + url.Values{"v": {v}}.Encode()
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	slog.Debug("nbox api call",
		"method", method,
		"url", reqURL,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-Id"),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
