// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package telemetry

import (
	"context"

	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
)

const defaultQueueSize = 64

// Queue decouples callers from broker latency. Publish calls enqueue and
// return at once; Run drains the queue into the wrapped Publisher. When the
// queue is full the message is dropped and logged.
type Queue struct {
	pub   Publisher
	tasks chan func() error
	log   *logger.Logger
}

// NewQueue wraps pub. A size below one selects the default capacity.
func NewQueue(pub Publisher, size int, log *logger.Logger) *Queue {
	if size < 1 {
		size = defaultQueueSize
	}
	return &Queue{
		pub:   pub,
		tasks: make(chan func() error, size),
		log:   log.Component("telemetry"),
	}
}

func (q *Queue) PublishSummary(userID string, summary models.SessionSummary) error {
	return q.enqueue("summary", func() error { return q.pub.PublishSummary(userID, summary) })
}

func (q *Queue) PublishHardwareAlert(hw models.HardwareState) error {
	return q.enqueue("hardware_alert", func() error { return q.pub.PublishHardwareAlert(hw) })
}

func (q *Queue) PublishConnection(state models.ConnectionState) error {
	return q.enqueue("connection", func() error { return q.pub.PublishConnection(state) })
}

// Close is a no-op; the wrapped Publisher is closed when Run returns.
func (q *Queue) Close() error {
	return nil
}

// Run publishes queued messages until ctx is cancelled, then flushes what is
// already queued and closes the wrapped Publisher.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.flush()
			return q.pub.Close()
		case task := <-q.tasks:
			q.run(task)
		}
	}
}

func (q *Queue) flush() {
	for {
		select {
		case task := <-q.tasks:
			q.run(task)
		default:
			return
		}
	}
}

func (q *Queue) run(task func() error) {
	if err := task(); err != nil {
		q.log.Warn().Err(err).Msg("telemetry publish failed")
	}
}

func (q *Queue) enqueue(kind string, task func() error) error {
	select {
	case q.tasks <- task:
		return nil
	default:
		q.log.Warn().Str("kind", kind).Msg("telemetry queue full, message dropped")
		return ErrQueueFull
	}
}
