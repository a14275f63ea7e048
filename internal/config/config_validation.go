// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only values that can never be valid are rejected here; missing values are
// defaulted by [NewClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Channel.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative max attempts", ErrInvalidChannelConfigs)
	}
	if cfg.Workers.QueueSize < 0 {
		return fmt.Errorf("%w: negative queue size", ErrInvalidWorkerConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Channel.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("%w: url %q", ErrInvalidChannelConfigs, cfg.Channel.URL)
	}
	if cfg.Channel.BaseDelay < 0 || cfg.Channel.MaxAttempts < 1 || cfg.Channel.DialTimeout < 0 {
		return ErrInvalidChannelConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Speech.Provider {
	case SpeechProviderLog:
	case SpeechProviderPolly:
		if cfg.Speech.VoiceID == "" {
			return fmt.Errorf("%w: polly requires a voice id", ErrInvalidSpeechConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidSpeechConfigs, cfg.Speech.Provider)
	}
	if cfg.Speech.Rate < 0 || cfg.Speech.Pitch < 0 || cfg.Speech.ThrottleWindow < 0 {
		return ErrInvalidSpeechConfigs
	}

	if cfg.Session.TargetReps < 0 || cfg.Session.TargetSets < 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Workers.HistoryInterval < 0 || cfg.Workers.QueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
