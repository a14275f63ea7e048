// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		LogPath string `json:"log_path"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Channel struct {
		URL         string   `json:"url"`
		BaseDelay   Duration `json:"base_delay"`
		MaxAttempts int      `json:"max_attempts"`
		DialTimeout Duration `json:"dial_timeout"`
	} `json:"channel,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Speech struct {
		Provider        string   `json:"provider"`
		Region          string   `json:"region"`
		VoiceID         string   `json:"voice_id"`
		Engine          string   `json:"engine"`
		Locale          string   `json:"locale"`
		Rate            float64  `json:"rate"`
		Pitch           float64  `json:"pitch"`
		ThrottleWindow  Duration `json:"throttle_window"`
		MuteServerVoice bool     `json:"mute_server_voice"`
	} `json:"speech,omitempty"`

	Telemetry struct {
		Broker      string `json:"broker"`
		ClientID    string `json:"client_id"`
		TopicPrefix string `json:"topic_prefix"`
	} `json:"telemetry,omitempty"`

	Session struct {
		UserID     string   `json:"user_id"`
		Exercises  []string `json:"exercises"`
		TargetReps int      `json:"target_reps"`
		TargetSets int      `json:"target_sets"`
	} `json:"session,omitempty"`

	Workers struct {
		HistoryInterval Duration `json:"history_interval"`
		QueueSize       int      `json:"queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogPath: jsonCfg.App.LogPath,
			Version: jsonCfg.App.Version,
		},
		Channel: Channel{
			URL:         jsonCfg.Channel.URL,
			BaseDelay:   time.Duration(jsonCfg.Channel.BaseDelay),
			MaxAttempts: jsonCfg.Channel.MaxAttempts,
			DialTimeout: time.Duration(jsonCfg.Channel.DialTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Speech: Speech{
			Provider:        jsonCfg.Speech.Provider,
			Region:          jsonCfg.Speech.Region,
			VoiceID:         jsonCfg.Speech.VoiceID,
			Engine:          jsonCfg.Speech.Engine,
			Locale:          jsonCfg.Speech.Locale,
			Rate:            jsonCfg.Speech.Rate,
			Pitch:           jsonCfg.Speech.Pitch,
			ThrottleWindow:  time.Duration(jsonCfg.Speech.ThrottleWindow),
			MuteServerVoice: jsonCfg.Speech.MuteServerVoice,
		},
		Telemetry: Telemetry{
			Broker:      jsonCfg.Telemetry.Broker,
			ClientID:    jsonCfg.Telemetry.ClientID,
			TopicPrefix: jsonCfg.Telemetry.TopicPrefix,
		},
		Session: Session{
			UserID:     jsonCfg.Session.UserID,
			Exercises:  jsonCfg.Session.Exercises,
			TargetReps: jsonCfg.Session.TargetReps,
			TargetSets: jsonCfg.Session.TargetSets,
		},
		Workers: Workers{
			HistoryInterval: time.Duration(jsonCfg.Workers.HistoryInterval),
			QueueSize:       jsonCfg.Workers.QueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
