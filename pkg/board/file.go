package board

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// FileBoard keeps boards as JSON files in a directory, for single-machine
// use by the CLI. Entries past their expiry are removed on read.
// It is safe for concurrent use within one process.
type FileBoard struct {
	mu  sync.RWMutex
	dir string
}

// NewFileBoard creates a file board in dir, creating the directory if needed.
func NewFileBoard(dir string) (*FileBoard, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "board directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}
	return &FileBoard{dir: dir}, nil
}

// Dir returns the board directory.
func (b *FileBoard) Dir() string { return b.dir }

// Path returns the file that holds board name.
// Names are hashed so the first two hex digits spread files over
// subdirectories.
func (b *FileBoard) Path(name string) string {
	sum := blake3.Sum256([]byte(name))
	hash := hex.EncodeToString(sum[:])
	return filepath.Join(b.dir, hash[:2], hash[2:]+".json")
}

// Put stores p under name.
func (b *FileBoard) Put(_ context.Context, name string, p transfer.Payload, ttl time.Duration) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	data, err := json.Marshal(NewEntry(p, ttl))
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	path := b.Path(name)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write board %s: %w", name, err)
	}
	return nil
}

// Get returns the content of name.
func (b *FileBoard) Get(_ context.Context, name string) (Entry, bool, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return Entry{}, false, err
	}
	path := b.Path(name)

	b.mu.RLock()
	data, err := os.ReadFile(path)
	b.mu.RUnlock()
	if os.IsNotExist(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read board %s: %w", name, err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Corrupt entry - treat as empty
		b.remove(path, data)
		return Entry{}, false, nil
	}
	if e.Expired(time.Now()) {
		b.remove(path, data)
		return Entry{}, false, nil
	}
	return e, true, nil
}

// remove deletes path if it still holds data, so an entry written after the
// read is not lost.
func (b *FileBoard) remove(path string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		_ = os.Remove(path)
	}
}

// Delete clears name.
func (b *FileBoard) Delete(_ context.Context, name string) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	err := os.Remove(b.Path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file boards.
func (b *FileBoard) Close() error {
	return nil
}

var _ Board = (*FileBoard)(nil)
