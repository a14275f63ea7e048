// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-form-coach/models"

//go:generate mockgen -source=sender.go -destination=../mock/sender_mock.go -package=mock

// Sender is the outbound half of the realtime channel. It is satisfied by
// *channel.Manager.
type Sender interface {
	// Send encodes and writes one envelope. It returns false when the channel
	// is not open or the write failed; nothing is queued.
	Send(t models.MessageType, data any) bool

	// IsConnected reports whether the channel is open.
	IsConnected() bool
}
