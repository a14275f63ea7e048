// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-form-coach/internal/channel"
	"github.com/MKhiriev/go-form-coach/internal/feedback"
	"github.com/MKhiriev/go-form-coach/internal/service"
	"github.com/MKhiriev/go-form-coach/models"
)

func (a *App) onStateChange(state models.ConnectionState, err error) {
	ev := a.log.Info()
	if err != nil {
		ev = a.log.Warn().Err(err)
	}
	if errors.Is(err, channel.ErrGivenUp) {
		ev = a.log.Error().Err(err)
	}
	ev.Str("state", state.String()).Msg("channel state changed")

	_ = a.telemetry.PublishConnection(state)
}

// onVoice speaks backend voice messages as-is.
func (a *App) onVoice(env models.Envelope) {
	if !a.cfg.Speech.SpeakServerVoice {
		return
	}
	voice, ok := env.Payload.(*models.VoicePayload)
	if !ok {
		return
	}
	a.policy.SpeakNow(voice.Text)
}

// onSessionStarted fetches the profile of the user whose session started.
func (a *App) onSessionStarted(env models.Envelope) {
	a.policy.Reset()

	userID := a.stores.Session.Get().UserID
	if userID == "" {
		userID = a.cfg.Session.UserID
	}
	if a.services.HistoryService == nil || userID == "" {
		return
	}

	a.background(func(ctx context.Context) {
		profile, err := a.services.HistoryService.Profile(ctx, userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				a.log.Info().Str("user_id", userID).Msg("no stored profile")
				return
			}
			a.log.Warn().Err(err).Str("user_id", userID).Msg("fetch profile")
			return
		}

		a.mu.Lock()
		a.profile = &profile
		a.mu.Unlock()
		a.log.Info().Str("user_id", userID).Str("name", profile.Name).Msg("profile loaded")
	})
}

// onSessionStopped mirrors the summary to telemetry and refreshes history.
func (a *App) onSessionStopped(env models.Envelope) {
	state := a.stores.Session.Get()
	if state.Summary != nil {
		a.log.Info().
			Int("total_reps", state.Summary.TotalReps).
			Int("total_sets", state.Summary.TotalSets).
			Float64("calories", state.Summary.Calories).
			Msg("session finished")
		_ = a.telemetry.PublishSummary(state.UserID, *state.Summary)
	}

	userID := state.UserID
	if userID == "" {
		userID = a.cfg.Session.UserID
	}
	if a.services.HistoryService == nil || userID == "" {
		return
	}

	a.background(func(ctx context.Context) {
		history, err := a.services.HistoryService.Refresh(ctx, userID)
		if err != nil {
			a.log.Warn().Err(err).Str("user_id", userID).Msg("refresh history")
			return
		}
		a.log.Info().Int("total_sessions", history.TotalSessions).Msg("history refreshed")
	})
}

// onHardware publishes an alert when a safety warning appears.
func (a *App) onHardware(hw *models.HardwareState) {
	alert := hw != nil && hw.SafetyAlert()
	if alert && !a.alerting {
		a.log.Warn().
			Int("heart_rate", hw.HeartRate).
			Bool("tremor", hw.IMUTremorDetected).
			Msg("hardware safety alert")
		_ = a.telemetry.PublishHardwareAlert(*hw)
	}
	a.alerting = alert
}

func (a *App) onBanner(d *feedback.Decision) {
	if d == nil {
		a.log.Debug().Msg("feedback hidden")
		return
	}
	a.log.Info().Str("status", string(d.Status)).Str("text", d.Text).Bool("spoken", d.Speak).Msg("feedback")
}
