// Package httputil provides HTTP helpers for remote board clients.
//
// # Retry
//
// [Retry] runs an operation up to a fixed number of times with exponential
// backoff. Only errors wrapped in [RetryableError] are retried; everything
// else is returned at once:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := httputil.Do(ctx, client, req)
//	    ...
//	})
//
// # Requests
//
// [Do] sends a request and reports it to the observability HTTP hooks.
// Transport failures and 5xx responses come back as [RetryableError] so
// they can be passed to [Retry] unchanged. A 429 response is retried too.
package httputil
