package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Transfer hooks
	tr := NoopTransferHooks{}
	tr.OnCopyStart(ctx, 3)
	tr.OnCopyComplete(ctx, 4, 1, time.Millisecond, nil)
	tr.OnProduceFailed(ctx, errors.New("encode"))
	tr.OnPaste(ctx, 4, time.Millisecond, nil)

	// Board hooks
	b := NoopBoardHooks{}
	b.OnBoardHit(ctx, "file")
	b.OnBoardMiss(ctx, "redis")
	b.OnBoardPut(ctx, "http", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:7420", "/boards/default")
	h.OnResponse(ctx, "GET", "localhost:7420", "/boards/default", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:7420", "/boards/default", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Transfer().(NoopTransferHooks); !ok {
		t.Error("Transfer() should return NoopTransferHooks by default")
	}
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Board() should return NoopBoardHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customTransfer := &testTransferHooks{}
	SetTransferHooks(customTransfer)
	if Transfer() != customTransfer {
		t.Error("SetTransferHooks should set custom hooks")
	}

	customBoard := &testBoardHooks{}
	SetBoardHooks(customBoard)
	if Board() != customBoard {
		t.Error("SetBoardHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Transfer().(NoopTransferHooks); !ok {
		t.Error("Reset() should restore NoopTransferHooks")
	}
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Reset() should restore NoopBoardHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testTransferHooks{}
	SetTransferHooks(custom)

	// Setting nil should be ignored
	SetTransferHooks(nil)

	if Transfer() != custom {
		t.Error("SetTransferHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testTransferHooks struct{ NoopTransferHooks }
type testBoardHooks struct{ NoopBoardHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
