package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/pathclip/pkg/errors"
)

// SessionStore persists paste sessions per board as JSON files, so the
// offset of repeated pastes survives between CLI invocations.
type SessionStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewSessionStore creates a store under baseDir, creating it if needed.
func NewSessionStore(baseDir string) (*SessionStore, error) {
	if baseDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "session directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &SessionStore{baseDir: baseDir}, nil
}

func (s *SessionStore) sessionPath(board string) string {
	return filepath.Join(s.baseDir, board+".session.json")
}

// Get returns the session of board, or a fresh non-owning session if none
// was saved.
func (s *SessionStore) Get(_ context.Context, board string) (*Session, error) {
	if err := errors.ValidateBoardName(board); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.sessionPath(board))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSession(board), nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	sess.Board = board
	return &sess, nil
}

// Set saves sess under its board name.
func (s *SessionStore) Set(_ context.Context, sess *Session) error {
	if err := errors.ValidateBoardName(sess.Board); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(sess.Board), data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Delete removes the session of board.
func (s *SessionStore) Delete(_ context.Context, board string) error {
	if err := errors.ValidateBoardName(board); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.sessionPath(board)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Path returns the base directory for session files.
func (s *SessionStore) Path() string {
	return s.baseDir
}
