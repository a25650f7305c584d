// Package session persists the authenticated session across process restarts.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sentryprime/sentryctl/internal/domain"
)

// FileStore keeps the session token and cached identity in a JSON file. It is
// the single owner of the persisted credential: nothing else touches the file.
// The in-memory copy doubles as the gateway's token source.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	current *domain.Session
	loaded  bool
}

// NewFileStore creates a store backed by the given file path. The file is not
// read until the first Restore or Token call.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Persist writes the session to disk with owner-only permissions. The write
// goes through a temp file and rename so a crash never leaves a torn file.
func (s *FileStore) Persist(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil || session.Token == "" {
		return fmt.Errorf("refusing to persist empty session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	b, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	copied := *session
	s.current = &copied
	s.loaded = true
	return nil
}

// Restore returns the persisted session, or (nil, nil) when none exists. The
// token is returned as stored; validity against the server is the caller's
// problem.
func (s *FileStore) Restore() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	if s.current == nil {
		return nil, nil
	}

	copied := *s.current
	return &copied, nil
}

// Clear removes the persisted session. Restore returns nil afterwards until
// the next Persist.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Token implements the gateway's token source. It returns the empty string
// when logged out; the gateway sends the request anyway.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return ""
	}
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.current = nil
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var loaded domain.Session
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}

	// A file without a token is as good as no file.
	if loaded.Token == "" {
		s.current = nil
	} else {
		s.current = &loaded
	}
	s.loaded = true
	return nil
}
