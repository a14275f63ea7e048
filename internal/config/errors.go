// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidChannelConfigs indicates invalid channel settings (for
	// example, a non-websocket URL or a zero retry budget).
	ErrInvalidChannelConfigs = errors.New("invalid channel configuration")
	// ErrInvalidAdapterConfigs indicates invalid REST adapter settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidSpeechConfigs indicates an unknown speech provider or
	// invalid prosody values.
	ErrInvalidSpeechConfigs = errors.New("invalid speech configuration")
	// ErrInvalidSessionConfigs indicates negative session targets.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
