// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import (
	"errors"
	"fmt"
)

var (
	// ErrGivenUp is reported to the state listener once the retry budget is
	// spent.
	ErrGivenUp = errors.New("permanently disconnected")
	// ErrDisconnected is returned by a Connect that was overtaken by
	// Disconnect.
	ErrDisconnected = errors.New("disconnected while connecting")
	ErrEmptyURL     = errors.New("channel url is empty")
)

// ConnectionError is returned when the transport could not be opened.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
