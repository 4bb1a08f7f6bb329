package statesync

import (
	"context"
	"errors"
	"time"
)

var ErrLoadTimeout = errors.New("load timed out")

// Load runs fetch and waits at most timeout for it to finish. When the
// deadline fires the caller gets ErrLoadTimeout immediately; the fetch keeps
// running in the background and its late result is discarded. This bounds
// how long a caller can be stuck in a loading state even if the underlying
// request never resolves.
func Load(ctx context.Context, timeout time.Duration, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)

	type result struct {
		value interface{}
		err   error
	}

	done := make(chan result, 1)
	go func() {
		defer cancel()
		value, err := fetch(ctx)
		done <- result{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrLoadTimeout
		}
		return nil, ctx.Err()
	}
}
