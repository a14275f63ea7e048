// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionState is the lifecycle state of the channel to the backend.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Open
	Closing
	Reconnecting
	// GivenUp is terminal until Connect is called again.
	GivenUp
)

var connectionStateNames = [...]string{
	Disconnected: "disconnected",
	Connecting:   "connecting",
	Open:         "open",
	Closing:      "closing",
	Reconnecting: "reconnecting",
	GivenUp:      "given_up",
}

func (s ConnectionState) String() string {
	if s < 0 || int(s) >= len(connectionStateNames) {
		return "unknown"
	}
	return connectionStateNames[s]
}
