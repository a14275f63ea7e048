// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_PATH": "/var/log/coach.log",
		"APP_VERSION":  "0.3.0",

		"CHANNEL_URL":          "ws://10.0.0.2:8000/ws",
		"CHANNEL_BASE_DELAY":   "500ms",
		"CHANNEL_MAX_ATTEMPTS": "7",
		"CHANNEL_DIAL_TIMEOUT": "3s",

		"ADAPTER_ADDRESS":         "10.0.0.2:8000",
		"ADAPTER_REQUEST_TIMEOUT": "4s",

		"SPEECH_PROVIDER":          "polly",
		"SPEECH_REGION":            "eu-west-1",
		"SPEECH_VOICE_ID":          "Lea",
		"SPEECH_ENGINE":            "neural",
		"SPEECH_LOCALE":            "fr-FR",
		"SPEECH_RATE":              "1.1",
		"SPEECH_PITCH":             "0.9",
		"SPEECH_THROTTLE_WINDOW":   "2s",
		"SPEECH_MUTE_SERVER_VOICE": "true",

		"TELEMETRY_BROKER":       "tcp://broker:1883",
		"TELEMETRY_CLIENT_ID":    "coach-1",
		"TELEMETRY_TOPIC_PREFIX": "gym",

		"SESSION_USER_ID":     "u-1",
		"SESSION_EXERCISES":   "squat,pushup",
		"SESSION_TARGET_REPS": "12",
		"SESSION_TARGET_SETS": "4",

		"WORKERS_HISTORY_INTERVAL": "1m",
		"WORKERS_QUEUE_SIZE":       "64",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/log/coach.log", cfg.App.LogPath)
	assert.Equal(t, "0.3.0", cfg.App.Version)

	assert.Equal(t, "ws://10.0.0.2:8000/ws", cfg.Channel.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Channel.BaseDelay)
	assert.Equal(t, 7, cfg.Channel.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Channel.DialTimeout)

	assert.Equal(t, "10.0.0.2:8000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 4*time.Second, cfg.Adapter.RequestTimeout)

	assert.Equal(t, "polly", cfg.Speech.Provider)
	assert.Equal(t, "eu-west-1", cfg.Speech.Region)
	assert.Equal(t, "Lea", cfg.Speech.VoiceID)
	assert.Equal(t, "neural", cfg.Speech.Engine)
	assert.Equal(t, "fr-FR", cfg.Speech.Locale)
	assert.InDelta(t, 1.1, cfg.Speech.Rate, 1e-9)
	assert.InDelta(t, 0.9, cfg.Speech.Pitch, 1e-9)
	assert.Equal(t, 2*time.Second, cfg.Speech.ThrottleWindow)
	assert.True(t, cfg.Speech.MuteServerVoice)

	assert.Equal(t, "tcp://broker:1883", cfg.Telemetry.Broker)
	assert.Equal(t, "coach-1", cfg.Telemetry.ClientID)
	assert.Equal(t, "gym", cfg.Telemetry.TopicPrefix)

	assert.Equal(t, "u-1", cfg.Session.UserID)
	assert.Equal(t, []string{"squat", "pushup"}, cfg.Session.Exercises)
	assert.Equal(t, 12, cfg.Session.TargetReps)
	assert.Equal(t, 4, cfg.Session.TargetSets)

	assert.Equal(t, time.Minute, cfg.Workers.HistoryInterval)
	assert.Equal(t, 64, cfg.Workers.QueueSize)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Empty(t, cfg.Channel.URL)
	assert.Zero(t, cfg.Channel.BaseDelay)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("CHANNEL_DIAL_TIMEOUT", "soon")

	err := parseEnv(&StructuredConfig{})

	assert.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"1s", time.Second},
		{"250ms", 250 * time.Millisecond},
		{"1m30s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CHANNEL_BASE_DELAY", tt.value)

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.expected, cfg.Channel.BaseDelay)
		})
	}
}
