// Package client is the consumer-side half of the auth flow: it keeps the
// issued token and role across runs, attaches the token to every request, and
// decides whether a protected view may render.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pims/auth"
)

// Session is the client-held record of an authenticated login.
type Session struct {
	Token string    `json:"token"`
	Role  auth.Role `json:"role"`
}

// Empty reports whether no login is stored.
func (s Session) Empty() bool {
	return s.Token == ""
}

// SessionStore persists a Session across process restarts.
type SessionStore interface {
	Save(session Session) error
	Read() (Session, error)
	Clear() error
}

// FileStore keeps the session in a JSON file. A missing file reads as an
// empty session; the client treats a stored token as valid until a server
// call rejects it.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save persists the token and role, creating parent directories as needed.
func (f *FileStore) Save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("client: create session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("client: encode session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("client: write session: %w", err)
	}
	return nil
}

// Read returns the stored session, or an empty one when nothing is stored.
func (f *FileStore) Read() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("client: read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file behaves like no session at all.
		return Session{}, nil
	}
	return session, nil
}

// Clear removes the persisted session. Used by logout.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("client: clear session: %w", err)
	}
	return nil
}
