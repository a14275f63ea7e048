// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import (
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultBaseDelay   = time.Second
	defaultMaxAttempts = 5
)

// newBackoff yields base, 2*base, 4*base, ... and stops after maxAttempts
// values.
func newBackoff(base time.Duration, maxAttempts int) retry.Backoff {
	if base <= 0 {
		base = defaultBaseDelay
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return retry.WithMaxRetries(uint64(maxAttempts), retry.NewExponential(base))
}

type givenUpError struct {
	attempts int
	last     error
}

func (e *givenUpError) Error() string {
	if e.last == nil {
		return fmt.Sprintf("%v after %d attempts", ErrGivenUp, e.attempts)
	}
	return fmt.Sprintf("%v after %d attempts: %v", ErrGivenUp, e.attempts, e.last)
}

func (e *givenUpError) Is(target error) bool {
	return target == ErrGivenUp
}

func (e *givenUpError) Unwrap() error {
	return e.last
}
