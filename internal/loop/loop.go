// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package loop provides the single event loop that serialises envelope
// handling and timer callbacks. Everything posted to a Loop runs on one
// goroutine, one function at a time, in posting order.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/logger"
)

// ErrStopped is returned by Run when the loop was already run and stopped.
var ErrStopped = errors.New("event loop stopped")

const defaultQueueSize = 256

// Loop is a FIFO queue of functions drained by Run.
type Loop struct {
	queue chan func()
	sched clock.Scheduler
	log   *logger.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// New creates a Loop whose timers are scheduled on sched. A size below one
// selects the default queue capacity.
func New(sched clock.Scheduler, size int, log *logger.Logger) *Loop {
	if size < 1 {
		size = defaultQueueSize
	}
	return &Loop{
		queue: make(chan func(), size),
		sched: sched,
		log:   log.Component("loop"),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It blocks while the queue is full and returns false once
// the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stopped {
		return false
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run drains the queue until ctx is cancelled. Functions still queued at
// that point are dropped. A panicking function is logged and does not stop
// the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.RLock()
	stopped := l.stopped
	l.mu.RUnlock()
	if stopped {
		return ErrStopped
	}

	l.log.Debug().Msg("event loop started")
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Debug().Msg("event loop stopped")
			return nil
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

// AfterFunc schedules f to be posted to the loop after d. It implements
// [clock.Scheduler], so stores and policies driven by a Loop run their
// timer callbacks on the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &timer{}
	t.inner = l.sched.AfterFunc(d, func() {
		if t.cancelled.Load() {
			return
		}
		l.Post(func() {
			if t.cancelled.Load() {
				return
			}
			f()
		})
	})
	return t
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("event loop task panicked")
		}
	}()
	fn()
}

func (l *Loop) stop() {
	// done is closed before taking the write lock so that a Post blocked on
	// a full queue can release its read lock.
	close(l.done)
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
}

// timer cancels both the underlying timer and a callback already posted to
// the queue but not yet run.
type timer struct {
	inner     clock.Timer
	cancelled atomic.Bool
}

func (t *timer) Stop() bool {
	if t.cancelled.Swap(true) {
		return false
	}
	return t.inner.Stop()
}
