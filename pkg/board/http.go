package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/httputil"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// HTTPBoard is a client for a board served by Server. Network failures and
// server errors are retried with backoff.
type HTTPBoard struct {
	base     *url.URL
	client   *http.Client
	attempts int
	delay    time.Duration
}

// HTTPOption configures an HTTPBoard.
type HTTPOption func(*HTTPBoard)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(b *HTTPBoard) {
		if c != nil {
			b.client = c
		}
	}
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) HTTPOption {
	return func(b *HTTPBoard) {
		b.attempts, b.delay = attempts, delay
	}
}

// NewHTTPBoard returns a client for the board server at baseURL.
func NewHTTPBoard(baseURL string, opts ...HTTPOption) (*HTTPBoard, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid board URL: %q", baseURL)
	}
	b := &HTTPBoard{
		base:     u,
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *HTTPBoard) endpoint(name string, query url.Values) string {
	u := b.base.JoinPath("boards", name)
	u.RawQuery = query.Encode()
	return u.String()
}

// do runs one request with retries. build is called per attempt so the body
// can be re-read.
func (b *HTTPBoard) do(ctx context.Context, build func() (*http.Request, error), handle func(*http.Response) error) error {
	return httputil.Retry(ctx, b.attempts, b.delay, func() error {
		req, err := build()
		if err != nil {
			return err
		}
		resp, err := httputil.Do(ctx, b.client, req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		return handle(resp)
	})
}

// Put stores p under name on the server.
func (b *HTTPBoard) Put(ctx context.Context, name string, p transfer.Payload, ttl time.Duration) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	query := url.Values{}
	if ttl > 0 {
		query.Set("ttl", ttl.String())
	}
	return b.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPut, b.endpoint(name, query), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, func(resp *http.Response) error {
		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
			return unexpected(resp)
		}
		return nil
	})
}

// Get returns the content of name from the server.
func (b *HTTPBoard) Get(ctx context.Context, name string) (Entry, bool, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return Entry{}, false, err
	}
	var (
		e  Entry
		ok bool
	)
	err := b.do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, b.endpoint(name, nil), nil)
	}, func(resp *http.Response) error {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil
		case http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode board %s", name)
			}
			ok = true
			return nil
		default:
			return unexpected(resp)
		}
	})
	if err != nil {
		return Entry{}, false, err
	}
	return e, ok, nil
}

// Delete clears name on the server.
func (b *HTTPBoard) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	return b.do(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodDelete, b.endpoint(name, nil), nil)
	}, func(resp *http.Response) error {
		if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
			return unexpected(resp)
		}
		return nil
	})
}

// Close releases idle connections.
func (b *HTTPBoard) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func unexpected(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	code := errors.ErrCodeNetwork
	if resp.StatusCode == http.StatusBadRequest {
		code = errors.ErrCodeInvalidInput
	}
	return errors.New(code, "board server: %d %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}

var _ Board = (*HTTPBoard)(nil)
