// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package telemetry

import (
	"sync"

	"github.com/MKhiriev/go-form-coach/models"
)

// FakePublisher records published events for test assertions. It is safe
// for concurrent use.
type FakePublisher struct {
	mu sync.Mutex

	summaries   []models.SessionSummary
	alerts      []models.HardwareState
	connections []models.ConnectionState
	closed      bool

	// PublishError, if set, is returned by every publish call.
	PublishError error
}

// NewFakePublisher creates a FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) PublishSummary(_ string, summary models.SessionSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

func (f *FakePublisher) PublishHardwareAlert(hw models.HardwareState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.alerts = append(f.alerts, hw)
	return nil
}

func (f *FakePublisher) PublishConnection(state models.ConnectionState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}
	f.connections = append(f.connections, state)
	return nil
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// Summaries returns a copy of the published summaries.
func (f *FakePublisher) Summaries() []models.SessionSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SessionSummary(nil), f.summaries...)
}

// Alerts returns a copy of the published hardware alerts.
func (f *FakePublisher) Alerts() []models.HardwareState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HardwareState(nil), f.alerts...)
}

// Connections returns a copy of the published connection states.
func (f *FakePublisher) Connections() []models.ConnectionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ConnectionState(nil), f.connections...)
}

// Closed reports whether Close was called.
func (f *FakePublisher) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
