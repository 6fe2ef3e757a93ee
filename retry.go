package nftexchange

import (
	"time"
)

// Retry invokes op up to attempts times, sleeping delay between tries, and
// returns the first success. The final failure after exhausting attempts is
// returned unchanged so callers can match on its kind. Intended for polling
// eventually-consistent external state, never for transaction submission.
func Retry[T any](attempts int, delay time.Duration, op func() (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	var result T
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
		}
		result, err = op()
		if err == nil {
			return result, nil
		}
	}
	var zero T
	return zero, err
}
