// Package httputil provides HTTP utilities for outgoing requests.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff, retrying only errors
// wrapped in [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Wrap network failures, 429 and 5xx responses as retryable; other 4xx are
// permanent. A positive [RetryableError].After, typically taken from a
// Retry-After header with [RetryAfter], replaces the backoff delay.
// [RetryWithBackoff] uses 3 attempts starting at one second.
//
// Response caching lives in the cache package, which offers file, Redis and
// MongoDB backends behind one interface.
package httputil
