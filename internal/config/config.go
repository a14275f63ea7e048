// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-form-coach client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log destination.
	App App `envPrefix:"APP_"`

	// Channel holds the realtime channel endpoint and reconnect policy.
	Channel Channel `envPrefix:"CHANNEL_"`

	// Adapter holds the REST collaborator address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Speech holds the speech-output provider and voice settings.
	Speech Speech `envPrefix:"SPEECH_"`

	// Telemetry holds the optional MQTT mirror settings.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// Session holds the session the CLI starts once connected.
	Session Session `envPrefix:"SESSION_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level configuration values.
type App struct {
	// LogPath is the file the client appends JSON log lines to. Empty means
	// stdout.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Channel holds the realtime channel settings.
type Channel struct {
	// URL is the websocket endpoint of the analysis backend
	// (e.g. "ws://localhost:8000/ws").
	// Env: CHANNEL_URL
	URL string `env:"URL"`

	// BaseDelay is the delay before the first reconnect attempt. Each
	// further attempt doubles it.
	// Env: CHANNEL_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// MaxAttempts is the number of reconnect attempts before giving up.
	// Env: CHANNEL_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// DialTimeout bounds a single connection attempt.
	// Env: CHANNEL_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`
}

// Adapter holds configuration for the REST collaborator.
type Adapter struct {
	// HTTPAddress is the base address of the REST API, with or without a
	// scheme (e.g. "localhost:8000").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Speech holds the speech-output settings.
type Speech struct {
	// Provider selects the synthesiser: "polly" or "log".
	// Env: SPEECH_PROVIDER
	Provider string `env:"PROVIDER"`

	// Region is the AWS region used by the polly provider.
	// Env: SPEECH_REGION
	Region string `env:"REGION"`

	// VoiceID is the Polly voice (e.g. "Joanna").
	// Env: SPEECH_VOICE_ID
	VoiceID string `env:"VOICE_ID"`

	// Engine is the Polly engine: "standard" or "neural".
	// Env: SPEECH_ENGINE
	Engine string `env:"ENGINE"`

	// Locale is the BCP-47 language tag of spoken corrections.
	// Env: SPEECH_LOCALE
	Locale string `env:"LOCALE"`

	// Rate and Pitch are relative prosody factors; 1 is the voice default.
	// Env: SPEECH_RATE, SPEECH_PITCH
	Rate  float64 `env:"RATE"`
	Pitch float64 `env:"PITCH"`

	// ThrottleWindow is the minimum interval before a persisting correction
	// is spoken again.
	// Env: SPEECH_THROTTLE_WINDOW
	ThrottleWindow time.Duration `env:"THROTTLE_WINDOW"`

	// MuteServerVoice stops the client from speaking backend voice messages.
	// Env: SPEECH_MUTE_SERVER_VOICE
	MuteServerVoice bool `env:"MUTE_SERVER_VOICE"`
}

// Telemetry holds the MQTT mirror settings. An empty Broker disables it.
type Telemetry struct {
	// Broker is the MQTT broker URL (e.g. "tcp://localhost:1883").
	// Env: TELEMETRY_BROKER
	Broker string `env:"BROKER"`

	// ClientID is the MQTT client id. Empty generates one.
	// Env: TELEMETRY_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// TopicPrefix prefixes every published topic.
	// Env: TELEMETRY_TOPIC_PREFIX
	TopicPrefix string `env:"TOPIC_PREFIX"`
}

// Session holds the session started automatically once connected.
type Session struct {
	// UserID is the profile the session belongs to. Empty disables the
	// automatic start.
	// Env: SESSION_USER_ID
	UserID string `env:"USER_ID"`

	// Exercises is the ordered exercise plan.
	// Env: SESSION_EXERCISES (comma separated)
	Exercises []string `env:"EXERCISES" envSeparator:","`

	// TargetReps and TargetSets override the backend defaults when set.
	// Env: SESSION_TARGET_REPS, SESSION_TARGET_SETS
	TargetReps int `env:"TARGET_REPS"`
	TargetSets int `env:"TARGET_SETS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// HistoryInterval is how often the session history is refreshed while a
	// user is known.
	// Env: WORKERS_HISTORY_INTERVAL
	HistoryInterval time.Duration `env:"HISTORY_INTERVAL"`

	// QueueSize is the capacity of the event loop queue.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
