// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about copy and paste operations, board access, and HTTP calls
// made by remote boards.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the engine packages
// never import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTransferHooks(&myTransferHooks{})
//	    observability.SetBoardHooks(&myBoardHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Transfer().OnCopyStart(ctx, len(selection))
//	// ... build, remap, serialize ...
//	observability.Transfer().OnCopyComplete(ctx, elements, dropped, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Transfer Hooks
// =============================================================================

// TransferHooks receives events from copy and paste operations.
type TransferHooks interface {
	// Copy events
	OnCopyStart(ctx context.Context, selected int)
	OnCopyComplete(ctx context.Context, elements, dropped int, duration time.Duration, err error)

	// OnProduceFailed records a payload that could not be serialized.
	OnProduceFailed(ctx context.Context, err error)

	// OnPaste records a completed paste into a document.
	OnPaste(ctx context.Context, elements int, duration time.Duration, err error)
}

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from board operations.
type BoardHooks interface {
	// OnBoardHit records a read that found a payload.
	OnBoardHit(ctx context.Context, backend string)

	// OnBoardMiss records a read of an empty or expired board.
	OnBoardMiss(ctx context.Context, backend string)

	// OnBoardPut records a write.
	OnBoardPut(ctx context.Context, backend string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTransferHooks is a no-op implementation of TransferHooks.
type NoopTransferHooks struct{}

func (NoopTransferHooks) OnCopyStart(context.Context, int)                               {}
func (NoopTransferHooks) OnCopyComplete(context.Context, int, int, time.Duration, error) {}
func (NoopTransferHooks) OnProduceFailed(context.Context, error)                         {}
func (NoopTransferHooks) OnPaste(context.Context, int, time.Duration, error)             {}

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnBoardHit(context.Context, string)      {}
func (NoopBoardHooks) OnBoardMiss(context.Context, string)     {}
func (NoopBoardHooks) OnBoardPut(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	transferHooks TransferHooks = NoopTransferHooks{}
	boardHooks    BoardHooks    = NoopBoardHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetTransferHooks registers custom transfer hooks.
// This should be called once at application startup before any copy operations.
func SetTransferHooks(h TransferHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transferHooks = h
	}
}

// SetBoardHooks registers custom board hooks.
// This should be called once at application startup before any board operations.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Transfer returns the registered transfer hooks.
func Transfer() TransferHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transferHooks
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	transferHooks = NoopTransferHooks{}
	boardHooks = NoopBoardHooks{}
	httpHooks = NoopHTTPHooks{}
}
