package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perrors "github.com/matzehuels/pathclip/pkg/errors"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("permanent")
	transient := errors.New("transient")

	tests := []struct {
		name      string
		failures  int
		err       error
		attempts  int
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 3, 1, nil},
		{"recovers", 2, Retryable(transient), 3, 3, nil},
		{"exhausted", 5, Retryable(transient), 3, 3, transient},
		{"permanent", 5, permanent, 3, 1, permanent},
		{"zero attempts", 5, Retryable(transient), 0, 1, transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errors.New("down"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error should not be retryable")
	}
	wrapped := perrors.Wrap(perrors.ErrCodeNetwork, Retryable(errors.New("x")), "outer")
	if !IsRetryable(wrapped) {
		t.Error("wrapped retryable error should be retryable")
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	tests := []struct {
		path      string
		wantCode  int
		retryable bool
	}{
		{"/ok", http.StatusOK, false},
		{"/missing", http.StatusNotFound, false},
		{"/busy", 0, true},
		{"/broken", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+tt.path, nil)
			resp, err := Do(ctx, srv.Client(), req)
			if tt.retryable {
				if !IsRetryable(err) {
					t.Fatalf("err = %v, want retryable", err)
				}
				if !perrors.Is(err, perrors.ErrCodeNetwork) {
					t.Errorf("code = %s, want %s", perrors.GetCode(err), perrors.ErrCodeNetwork)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
		})
	}
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	_, err := Do(context.Background(), nil, req)
	if !IsRetryable(err) {
		t.Errorf("err = %v, want retryable", err)
	}
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	tests := []struct {
		name      string
		client    *http.Client
		timeout   time.Duration
		retryable bool
	}{
		{"client timeout", &http.Client{Timeout: 20 * time.Millisecond}, 0, true},
		{"context deadline", nil, 20 * time.Millisecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}
			req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
			_, err := Do(ctx, tt.client, req)
			if got := perrors.GetCode(err); got != perrors.ErrCodeTimeout {
				t.Errorf("code = %q, want %q (err: %v)", got, perrors.ErrCodeTimeout, err)
			}
			if IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", IsRetryable(err), tt.retryable)
			}
		})
	}
}
