// Package session holds the authenticated user for the whole process: one
// store, persisted to a JSON file, injected into every view instead of each
// view keeping its own copy of the current user.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

// AuthAPI is the slice of the gateway client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	CheckAuth(ctx context.Context) (*api.User, error)
}

type persisted struct {
	Token string    `json:"token"`
	User  *api.User `json:"user"`
}

// Store is the process-wide session. Safe for concurrent use.
type Store struct {
	client AuthAPI
	path   string

	mu    sync.RWMutex
	token string
	user  *api.User
	subs  []func(*api.User)
}

// NewStore creates a session store backed by the JSON file at path. The file
// is only read on Restore; a missing file means unauthenticated.
func NewStore(client AuthAPI, path string) *Store {
	return &Store{client: client, path: path}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "kshop", "session.json"), nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns the logged-in user, or nil when unauthenticated.
func (s *Store) Current() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Subscribe registers a callback invoked with the new user (nil on logout)
// whenever the session changes.
func (s *Store) Subscribe(fn func(*api.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Login authenticates and persists the session. On failure any prior session
// is cleared before the error is returned.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.clear()
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	subs := append([]func(*api.User){}, s.subs...)
	s.mu.Unlock()

	if err := s.persist(resp.Token, resp.User); err != nil {
		return nil, err
	}
	for _, fn := range subs {
		fn(resp.User)
	}
	return resp.User, nil
}

// Logout clears durable storage and memory. No backend round trip.
func (s *Store) Logout() {
	s.clear()
}

// Restore loads the persisted token and validates it against the backend.
// A rejected token clears the session and returns nil: restore failure is an
// unauthenticated state, not an error the caller handles.
func (s *Store) Restore(ctx context.Context) (*api.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil || p.Token == "" {
		s.clear()
		return nil, nil
	}

	s.mu.Lock()
	s.token = p.Token
	s.mu.Unlock()

	user, err := s.client.CheckAuth(ctx)
	if err != nil {
		if apiErr, ok := api.AsAPIError(err); ok && apiErr.IsAuth() {
			s.clear()
			return nil, nil
		}
		var transportErr *api.TransportError
		if errors.As(err, &transportErr) {
			// Backend unreachable: keep the session, the next request will
			// settle it.
			return nil, err
		}
		s.clear()
		return nil, nil
	}

	s.mu.Lock()
	s.user = user
	subs := append([]func(*api.User){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
	return user, nil
}

// HandleUnauthorized is registered as the gateway client's 401 hook: any
// 401 anywhere flips the process to unauthenticated.
func (s *Store) HandleUnauthorized() {
	s.clear()
}

func (s *Store) clear() {
	s.mu.Lock()
	wasAuthed := s.user != nil || s.token != ""
	s.token = ""
	s.user = nil
	subs := append([]func(*api.User){}, s.subs...)
	s.mu.Unlock()

	os.Remove(s.path)

	if wasAuthed {
		for _, fn := range subs {
			fn(nil)
		}
	}
}

func (s *Store) persist(token string, user *api.User) error {
	data, err := json.Marshal(persisted{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
