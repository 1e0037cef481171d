package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the operator's authentication context. The zero value is a
// signed-out session.
type Session struct {
	mu        sync.RWMutex
	active    bool
	token     string
	email     string
	expiresAt time.Time
	now       func() time.Time
}

type sessionFile struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// NewSession returns a signed-out session
func NewSession() *Session {
	return &Session{}
}

// Begin marks the session as signed in. A zero expiresAt never expires.
func (s *Session) Begin(token, email string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.token = token
	s.email = email
	s.expiresAt = expiresAt
}

// End signs the session out
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.token = ""
	s.email = ""
	s.expiresAt = time.Time{}
}

// Authenticated reports whether a login succeeded and has not expired.
// Stores that issue no token still produce an active session.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return false
	}
	if s.expiresAt.IsZero() {
		return true
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().Before(s.expiresAt)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Save writes the session to path with owner-only permissions. A signed-out
// session removes the file.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	active := s.active
	data := sessionFile{Token: s.token, Email: s.email, ExpiresAt: s.expiresAt}
	s.mu.RUnlock()

	if !active {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reads a session saved by Save. A missing file yields a
// signed-out session.
func LoadSession(path string) (*Session, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data sessionFile
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	s := NewSession()
	s.Begin(data.Token, data.Email, data.ExpiresAt)
	return s, nil
}
