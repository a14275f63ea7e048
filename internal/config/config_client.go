// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultChannelURL      = "ws://localhost:8000/ws"
	DefaultBaseDelay       = time.Second
	DefaultMaxAttempts     = 5
	DefaultDialTimeout     = 10 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultSpeechProvider  = SpeechProviderLog
	DefaultLocale          = "en-US"
	DefaultThrottleWindow  = 3 * time.Second
	DefaultTopicPrefix     = "formcoach"
	DefaultHistoryInterval = 5 * time.Minute
	DefaultQueueSize       = 256

	SpeechProviderPolly = "polly"
	SpeechProviderLog   = "log"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	// LogPath is the log file; empty logs to stdout.
	LogPath string
	Version string
}

// ClientChannel holds the realtime channel settings.
type ClientChannel struct {
	URL         string
	BaseDelay   time.Duration
	MaxAttempts int
	DialTimeout time.Duration
}

// ClientAdapter holds network settings used by the REST collaborator.
type ClientAdapter struct {
	// HTTPAddress is the REST base address. Empty disables profile and
	// history calls.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientSpeech holds the speech-output settings.
type ClientSpeech struct {
	Provider         string
	Region           string
	VoiceID          string
	Engine           string
	Locale           string
	Rate             float64
	Pitch            float64
	ThrottleWindow   time.Duration
	SpeakServerVoice bool
}

// ClientTelemetry holds the MQTT mirror settings.
type ClientTelemetry struct {
	// Broker is the MQTT broker URL. Empty disables telemetry.
	Broker      string
	ClientID    string
	TopicPrefix string
}

// Enabled reports whether a broker is configured.
func (t ClientTelemetry) Enabled() bool {
	return t.Broker != ""
}

// ClientSession holds the session started once connected.
type ClientSession struct {
	UserID     string
	Exercises  []string
	TargetReps int
	TargetSets int
}

// AutoStart reports whether the session should be started automatically.
func (s ClientSession) AutoStart() bool {
	return s.UserID != "" && len(s.Exercises) > 0
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// HistoryInterval defines how often session history is refreshed.
	HistoryInterval time.Duration
	// QueueSize is the event loop queue capacity.
	QueueSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App       ClientApp
	Channel   ClientChannel
	Adapter   ClientAdapter
	Speech    ClientSpeech
	Telemetry ClientTelemetry
	Session   ClientSession
	Workers   ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, applies defaults and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

// NewClientConfig projects cfg onto a [ClientConfig] and fills unset fields
// with defaults. It does not validate.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			LogPath: cfg.App.LogPath,
			Version: cfg.App.Version,
		},
		Channel: ClientChannel{
			URL:         cfg.Channel.URL,
			BaseDelay:   cfg.Channel.BaseDelay,
			MaxAttempts: cfg.Channel.MaxAttempts,
			DialTimeout: cfg.Channel.DialTimeout,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Speech: ClientSpeech{
			Provider:         cfg.Speech.Provider,
			Region:           cfg.Speech.Region,
			VoiceID:          cfg.Speech.VoiceID,
			Engine:           cfg.Speech.Engine,
			Locale:           cfg.Speech.Locale,
			Rate:             cfg.Speech.Rate,
			Pitch:            cfg.Speech.Pitch,
			ThrottleWindow:   cfg.Speech.ThrottleWindow,
			SpeakServerVoice: !cfg.Speech.MuteServerVoice,
		},
		Telemetry: ClientTelemetry{
			Broker:      cfg.Telemetry.Broker,
			ClientID:    cfg.Telemetry.ClientID,
			TopicPrefix: cfg.Telemetry.TopicPrefix,
		},
		Session: ClientSession{
			UserID:     cfg.Session.UserID,
			Exercises:  cfg.Session.Exercises,
			TargetReps: cfg.Session.TargetReps,
			TargetSets: cfg.Session.TargetSets,
		},
		Workers: ClientWorkers{
			HistoryInterval: cfg.Workers.HistoryInterval,
			QueueSize:       cfg.Workers.QueueSize,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Channel.URL == "" {
		cfg.Channel.URL = DefaultChannelURL
	}
	if cfg.Channel.BaseDelay == 0 {
		cfg.Channel.BaseDelay = DefaultBaseDelay
	}
	if cfg.Channel.MaxAttempts == 0 {
		cfg.Channel.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Channel.DialTimeout == 0 {
		cfg.Channel.DialTimeout = DefaultDialTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Speech.Provider == "" {
		cfg.Speech.Provider = DefaultSpeechProvider
	}
	if cfg.Speech.Locale == "" {
		cfg.Speech.Locale = DefaultLocale
	}
	if cfg.Speech.Rate == 0 {
		cfg.Speech.Rate = 1
	}
	if cfg.Speech.Pitch == 0 {
		cfg.Speech.Pitch = 1
	}
	if cfg.Speech.ThrottleWindow == 0 {
		cfg.Speech.ThrottleWindow = DefaultThrottleWindow
	}
	if cfg.Telemetry.TopicPrefix == "" {
		cfg.Telemetry.TopicPrefix = DefaultTopicPrefix
	}
	if cfg.Workers.HistoryInterval == 0 {
		cfg.Workers.HistoryInterval = DefaultHistoryInterval
	}
	if cfg.Workers.QueueSize == 0 {
		cfg.Workers.QueueSize = DefaultQueueSize
	}
}
