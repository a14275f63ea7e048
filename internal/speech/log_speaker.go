// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package speech

import (
	"sync/atomic"

	"github.com/MKhiriev/go-form-coach/internal/logger"
)

// LogSpeaker writes utterances to the log instead of an audio device.
type LogSpeaker struct {
	log *logger.Logger

	spoken    atomic.Int64
	cancelled atomic.Int64
}

func NewLogSpeaker(log *logger.Logger) *LogSpeaker {
	return &LogSpeaker{log: log.Component("speech")}
}

func (s *LogSpeaker) Speak(u Utterance) error {
	if u.Text == "" {
		return ErrEmptyText
	}
	s.spoken.Add(1)
	s.log.Info().
		Str("text", u.Text).
		Str("locale", u.Locale).
		Float64("rate", u.Rate).
		Float64("pitch", u.Pitch).
		Msg("speak")
	return nil
}

func (s *LogSpeaker) Cancel() {
	s.cancelled.Add(1)
}

// Spoken returns the number of accepted utterances.
func (s *LogSpeaker) Spoken() int64 {
	return s.spoken.Load()
}

// Cancelled returns the number of Cancel calls.
func (s *LogSpeaker) Cancelled() int64 {
	return s.cancelled.Load()
}
