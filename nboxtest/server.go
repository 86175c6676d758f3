// Package nboxtest provides an in-memory nbox entry store speaking the
// same wire contract as a real server. Tests mount it on an
// httptest.Server and point a clientcli.Client at it.
//
// The store records call counts and batch payloads so tests can assert on
// how a client talked to it, not just on end state.
package nboxtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	nbox "github.com/nbox-sh/nbox-cli"
)

// Server is an in-memory entry store. The zero value is not usable; use
// New.
type Server struct {
	mu      sync.Mutex
	entries map[string]nbox.Entry
	secrets map[string]any
	users   map[string]string
	tokens  map[string]bool

	// TokenExpired makes every authenticated request fail with a 401
	// whose body carries the expiry signal.
	TokenExpired bool

	keyLookups []string
	batches    [][]nbox.Entry
}

// New returns an empty store.
func New() *Server {
	return &Server{
		entries: make(map[string]nbox.Entry),
		secrets: make(map[string]any),
		users:   make(map[string]string),
		tokens:  make(map[string]bool),
	}
}

// SeedEntry stores an entry directly, bypassing the API.
func (s *Server) SeedEntry(e nbox.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = e
}

// SeedSecret registers a secret plaintext under a reference.
func (s *Server) SeedSecret(ref string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[ref] = value
}

// SeedUser registers login credentials.
func (s *Server) SeedUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// IssueToken mints a token accepted by the auth middleware.
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = true
	return token
}

// Entry returns the stored entry and whether it exists.
func (s *Server) Entry(key string) (nbox.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok
}

// KeyLookups returns every key probed through the get-by-key endpoint, in
// order.
func (s *Server) KeyLookups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keyLookups...)
}

// Batches returns the payload of every batch-create call received.
func (s *Server) Batches() [][]nbox.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]nbox.Entry(nil), s.batches...)
}

// Router returns the HTTP surface of the store.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/token", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/api/entry/prefix", s.handlePrefix)
		r.Get("/api/entry/key", s.handleKey)
		r.Delete("/api/entry/key", s.handleDelete)
		r.Get("/api/entry/secret-value", s.handleSecret)
		r.Post("/api/entry", s.handleCreate)
	})

	return r
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		expired := s.TokenExpired
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		valid := s.tokens[token]
		s.mu.Unlock()

		if expired {
			http.Error(w, "Token has expired", http.StatusUnauthorized)
			return
		}
		if !valid {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	password, ok := s.users[creds.Username]
	s.mu.Unlock()

	if !ok || password != creds.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]string{"access_token": s.IssueToken()})
}

func (s *Server) handlePrefix(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("v")

	s.mu.Lock()
	matches := []nbox.Entry{}
	if prefix != "login" {
		for key, e := range s.entries {
			if strings.HasPrefix(key, prefix) {
				matches = append(matches, e)
			}
		}
	}
	s.mu.Unlock()

	writeJSON(w, matches)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("v")

	s.mu.Lock()
	s.keyLookups = append(s.keyLookups, key)
	e, ok := s.entries[key]
	s.mu.Unlock()

	// absent keys answer 200 with a null body
	if !ok {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, e)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("v")

	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, map[string]string{"deleted": key})
}

func (s *Server) handleSecret(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("v")

	s.mu.Lock()
	value, ok := s.secrets[ref]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, map[string]any{"key": ref, "value": value})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var entries []nbox.Entry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.batches = append(s.batches, entries)
	for _, e := range entries {
		s.entries[e.Key] = e
	}
	s.mu.Unlock()

	writeJSON(w, entries)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
