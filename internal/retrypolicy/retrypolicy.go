// Package retrypolicy provides an explicit retry-with-backoff policy object.
// Callers construct one and pass it to whatever needs it; there is no
// module-level state.
package retrypolicy

import (
	"fmt"
	"time"
)

type Policy struct {
	Attempts  int
	BaseDelay time.Duration
}

// Default covers transient network and database hiccups.
var Default = Policy{Attempts: 3, BaseDelay: 500 * time.Millisecond}

// Do runs fn up to p.Attempts times, sleeping BaseDelay*(attempt number)
// between tries.
func Do[T any](p Policy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < p.Attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		time.Sleep(p.BaseDelay * time.Duration(i+1))
	}
	return zero, fmt.Errorf("after %d attempts: %w", p.Attempts, lastErr)
}
