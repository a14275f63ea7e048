// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package speech is the speech-output capability: it turns text into spoken
// audio and supports cancelling the utterance in progress.
//
// [Speaker] implementations never block the caller. Synthesis and playback run
// in the background and failures are logged, never returned to the feedback
// pipeline once the utterance has been accepted.
package speech

import (
	"errors"

	"github.com/MKhiriev/go-form-coach/internal/config"
	"github.com/MKhiriev/go-form-coach/internal/logger"
)

//go:generate mockgen -source=speech.go -destination=../mock/speaker_mock.go -package=mock

// ErrEmptyText is returned by Speak for an utterance without text.
var ErrEmptyText = errors.New("empty utterance text")

// Utterance is one piece of text to speak. Rate and Pitch are relative
// factors; 1 is the voice default.
type Utterance struct {
	Text   string
	Locale string
	Rate   float64
	Pitch  float64
}

// Speaker starts utterances and cancels them.
type Speaker interface {
	// Speak starts u and returns without waiting for playback. An utterance
	// already in progress keeps playing unless Cancel is called first.
	Speak(u Utterance) error

	// Cancel stops the utterance in progress, if any.
	Cancel()
}

// New builds the Speaker selected by cfg.Provider.
func New(cfg config.ClientSpeech, log *logger.Logger) (Speaker, error) {
	switch cfg.Provider {
	case config.SpeechProviderPolly:
		return NewPollySpeaker(cfg, DiscardPlayer{}, log)
	default:
		return NewLogSpeaker(log), nil
	}
}
