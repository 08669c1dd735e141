package board

import (
	"context"
	"time"

	"github.com/matzehuels/pathclip/pkg/transfer"
)

// NullBoard is a board that never stores anything.
// Useful for testing or when sharing should be disabled.
type NullBoard struct{}

// NewNullBoard creates a null board.
func NewNullBoard() Board {
	return NullBoard{}
}

// Put does nothing.
func (NullBoard) Put(context.Context, string, transfer.Payload, time.Duration) error { return nil }

// Get always reports an empty board.
func (NullBoard) Get(context.Context, string) (Entry, bool, error) { return Entry{}, false, nil }

// Delete does nothing.
func (NullBoard) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullBoard) Close() error { return nil }

var _ Board = NullBoard{}
