package httputil

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/observability"
)

// Do sends req with client and reports the exchange to the HTTP hooks.
//
// Transport errors and responses with status 429 or 5xx are returned as
// [RetryableError] with code ErrCodeNetwork, or ErrCodeTimeout when the
// request timed out; the response body is closed in that case. Once ctx is
// done the error is no longer retryable. Any other response is returned to
// the caller, who must close it.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req = req.WithContext(ctx)
	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		code := errors.ErrCodeNetwork
		var netErr net.Error
		if stderrors.As(err, &netErr) && netErr.Timeout() {
			code = errors.ErrCodeTimeout
		}
		wrapped := errors.Wrap(code, err, "%s %s", req.Method, req.URL)
		if ctx.Err() != nil {
			return nil, wrapped
		}
		return nil, Retryable(wrapped)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, Retryable(errors.New(errors.ErrCodeNetwork,
			"%s %s: %s", req.Method, req.URL, statusText(resp.StatusCode)))
	}
	return resp, nil
}

func statusText(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}
