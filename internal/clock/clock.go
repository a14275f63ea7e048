// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clock abstracts one-shot timers so that every self-clearing flag,
// throttle window and reconnect delay can be driven deterministically in
// tests.
package clock

import "time"

// Timer is a cancellable handle for a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// System schedules callbacks on the runtime timer heap. Callbacks run on
// their own goroutine.
type System struct{}

// AfterFunc implements [Scheduler] with [time.AfterFunc].
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
