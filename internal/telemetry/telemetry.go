// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package telemetry mirrors selected client events to an MQTT broker: the
// summary of every finished session, hardware safety alerts and the channel
// connection state.
//
// Publishing is best effort. A failed publish is reported to the caller and
// logged, it never interrupts the coaching pipeline.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-form-coach/models"
)

const (
	topicSessionSummary = "session/summary"
	topicHardwareAlert  = "hardware/alert"
	topicConnection     = "connection"
)

// Publisher publishes client events.
type Publisher interface {
	// PublishSummary sends the totals of a finished session.
	PublishSummary(userID string, summary models.SessionSummary) error

	// PublishHardwareAlert sends a hardware snapshot that carries a safety
	// warning.
	PublishHardwareAlert(hw models.HardwareState) error

	// PublishConnection sends the channel state. The message is retained so
	// late subscribers see the current state.
	PublishConnection(state models.ConnectionState) error

	// Close disconnects from the broker.
	Close() error
}

// SummaryPayload is the session/summary message body.
type SummaryPayload struct {
	Timestamp string                `json:"timestamp"`
	UserID    string                `json:"user_id,omitempty"`
	Summary   models.SessionSummary `json:"summary"`
}

// HardwarePayload is the hardware/alert message body.
type HardwarePayload struct {
	Timestamp string               `json:"timestamp"`
	Hardware  models.HardwareState `json:"hardware"`
}

// ConnectionPayload is the connection message body.
type ConnectionPayload struct {
	Timestamp string `json:"timestamp"`
	State     string `json:"state"`
}

// FormatSummary creates the JSON payload for a session summary.
func FormatSummary(ts time.Time, userID string, summary models.SessionSummary) ([]byte, error) {
	return json.Marshal(SummaryPayload{
		Timestamp: ts.UTC().Format(time.RFC3339),
		UserID:    userID,
		Summary:   summary,
	})
}

// FormatHardwareAlert creates the JSON payload for a hardware alert.
func FormatHardwareAlert(ts time.Time, hw models.HardwareState) ([]byte, error) {
	return json.Marshal(HardwarePayload{
		Timestamp: ts.UTC().Format(time.RFC3339),
		Hardware:  hw,
	})
}

// FormatConnection creates the JSON payload for a connection state.
func FormatConnection(ts time.Time, state models.ConnectionState) ([]byte, error) {
	return json.Marshal(ConnectionPayload{
		Timestamp: ts.UTC().Format(time.RFC3339),
		State:     state.String(),
	})
}

// NopPublisher discards everything. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSummary(string, models.SessionSummary) error { return nil }
func (NopPublisher) PublishHardwareAlert(models.HardwareState) error    { return nil }
func (NopPublisher) PublishConnection(models.ConnectionState) error     { return nil }
func (NopPublisher) Close() error                                       { return nil }
