// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"slices"

	"github.com/MKhiriev/go-form-coach/internal/feedback"
	"github.com/MKhiriev/go-form-coach/models"
)

// ReduceFeedback derives the visible feedback. Each producer overwrites the
// previous value; transitions clear it to nil. Events that are not producers
// leave fb unchanged.
func ReduceFeedback(fb *models.FeedbackState, env models.Envelope) *models.FeedbackState {
	switch p := env.Payload.(type) {
	case *models.FeedbackPayload:
		return &models.FeedbackState{
			Status:       p.Status,
			Message:      p.Message,
			Issues:       slices.Clone(p.Issues),
			MLClass:      clonePtr(p.MLClass),
			MLConfidence: clonePtr(p.MLConfidence),
			Timestamp:    env.ReceivedAt,
		}

	case *models.ExerciseUpdatePayload:
		label, ok := p.Classification()
		if !ok {
			return fb
		}
		return &models.FeedbackState{
			Status:       feedback.Classify(label),
			Message:      feedback.Correction(label),
			MLClass:      &label,
			MLConfidence: clonePtr(p.MLConfidence),
			Timestamp:    env.ReceivedAt,
		}

	case *models.RepRejectedPayload:
		msg := p.Message
		if msg == "" {
			msg = feedback.Humanize(p.Reason)
		}
		return &models.FeedbackState{
			Status:    models.StatusError,
			Message:   msg,
			Timestamp: env.ReceivedAt,
		}

	case *models.PausedPayload:
		if p.Reason == "" {
			return fb
		}
		return &models.FeedbackState{
			Status:    models.StatusWarning,
			Message:   pauseMessage(p.Reason),
			Timestamp: env.ReceivedAt,
		}

	case *models.ResumedPayload,
		*models.ExerciseChangePayload,
		*models.SetCompletePayload,
		*models.SessionStartedPayload,
		*models.SessionStoppedPayload:
		return nil
	}

	return fb
}

func pauseMessage(reason string) string {
	switch reason {
	case "heart_rate", "high_heart_rate":
		return "Paused: heart rate too high, take a breath"
	case "tremor", "imu_tremor":
		return "Paused: tremor detected, rest for a moment"
	default:
		return "Paused: " + feedback.Humanize(reason)
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
