package board

import (
	"context"
	"time"

	"github.com/matzehuels/pathclip/pkg/transfer"
)

// DefaultName is the board used when none is given.
const DefaultName = "default"

// Board is a set of named clipboard slots, each holding one payload.
type Board interface {
	// Put replaces the content of board name. A ttl of zero keeps the
	// entry until it is replaced or deleted.
	Put(ctx context.Context, name string, p transfer.Payload, ttl time.Duration) error

	// Get returns the content of board name. An empty or expired board
	// yields ok == false and no error.
	Get(ctx context.Context, name string) (e Entry, ok bool, err error)

	// Delete clears board name. Clearing an empty board is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases the backend's resources.
	Close() error
}

// Entry is the content of a board.
type Entry struct {
	Payload     transfer.Payload `json:"payload"`
	Fingerprint string           `json:"fingerprint,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	ExpiresAt   time.Time        `json:"expires_at,omitzero"`
}

// NewEntry stamps p for storage.
func NewEntry(p transfer.Payload, ttl time.Duration) Entry {
	now := time.Now().UTC()
	e := Entry{
		Payload:     p,
		Fingerprint: transfer.Fingerprint(p),
		CreatedAt:   now,
	}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// Expired reports whether e has passed its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
