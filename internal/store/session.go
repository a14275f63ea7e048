// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"slices"

	"github.com/MKhiriev/go-form-coach/models"
)

// ReduceSession folds exercise and session lifecycle events into s.
//
// exercise_update is sticky-merged: exercise, phase, rep count, confidence and
// form quality are always taken from the update, every other field keeps its
// previous value unless the update carries it.
func ReduceSession(s models.SessionState, env models.Envelope) models.SessionState {
	switch p := env.Payload.(type) {
	case *models.ExerciseUpdatePayload:
		s.Exercise = mergeExerciseUpdate(s.Exercise, p)

	case *models.RepCountPayload:
		s.Exercise.RepCount = p.Count
		if p.Target != nil {
			s.Exercise.TargetReps = *p.Target
		}
		if p.Set != nil {
			s.Exercise.SetCount = *p.Set
		}

	case *models.FatigueWarningPayload:
		s.Exercise.FatigueWarning = true
		s.Exercise.FatiguePercent = p.SlowdownPercent

	case *models.FeedbackPayload:
		if p.Issues != nil {
			s.Exercise.FormIssues = slices.Clone(p.Issues)
		}

	case *models.SessionStartedPayload:
		s = models.SessionState{
			Active:    true,
			UserID:    p.UserID,
			Exercises: slices.Clone(p.Exercises),
			CameraOn:  s.CameraOn,
			Exercise: models.ExerciseState{
				Exercise:   p.CurrentExercise,
				SetCount:   1,
				TargetReps: p.TargetReps,
				TargetSets: p.TargetSets,
			},
		}
		if s.Exercise.Exercise == "" && len(s.Exercises) > 0 {
			s.Exercise.Exercise = s.Exercises[0]
		}

	case *models.ExerciseChangePayload:
		s.ExerciseIndex = p.Index
		name := p.Name
		if name == "" && p.Index >= 0 && p.Index < len(s.Exercises) {
			name = s.Exercises[p.Index]
		}
		next := models.ExerciseState{
			Exercise:   name,
			SetCount:   1,
			TargetReps: s.Exercise.TargetReps,
			TargetSets: s.Exercise.TargetSets,
		}
		if p.TargetReps != nil {
			next.TargetReps = *p.TargetReps
		}
		if p.TargetSets != nil {
			next.TargetSets = *p.TargetSets
		}
		s.Exercise = next

	case *models.SetCompletePayload:
		s.Exercise.SetCount = p.NextSet
		s.Exercise.RepCount = 0

	case *models.PausedPayload:
		s.Paused = true
		s.PauseReason = p.Reason

	case *models.ResumedPayload:
		s.Paused = false
		s.PauseReason = ""

	case *models.SessionStoppedPayload:
		summary := models.SessionSummary{
			TotalReps: p.TotalReps,
			TotalSets: p.TotalSets,
			Calories:  p.Calories,
		}
		s.Active = false
		s.Paused = false
		s.PauseReason = ""
		s.Exercise = models.ExerciseState{}
		s.Summary = &summary

	case *models.CameraStartedPayload:
		s.CameraOn = true

	case *models.CameraStoppedPayload:
		s.CameraOn = false
	}

	return s
}

// ClearFatigue drops the fatigue flag. The percent is kept for display.
func ClearFatigue(s models.SessionState) models.SessionState {
	s.Exercise.FatigueWarning = false
	return s
}

func mergeExerciseUpdate(e models.ExerciseState, p *models.ExerciseUpdatePayload) models.ExerciseState {
	e.Exercise = p.Exercise
	e.Phase = p.Phase
	e.RepCount = p.RepCount
	e.Confidence = p.Confidence
	e.FormQuality = p.FormQuality

	if p.SetCount != nil {
		e.SetCount = *p.SetCount
	}
	if p.TargetReps != nil {
		e.TargetReps = *p.TargetReps
	}
	if p.TargetSets != nil {
		e.TargetSets = *p.TargetSets
	}
	if p.FeedbackCodes != nil {
		e.FormIssues = slices.Clone(p.FeedbackCodes)
	}
	if p.FatigueWarning != nil {
		e.FatigueWarning = *p.FatigueWarning
	}
	if p.FatiguePercent != nil {
		e.FatiguePercent = *p.FatiguePercent
	}
	if label, ok := p.Classification(); ok {
		e.MLClass = &label
	}
	if p.MLConfidence != nil {
		conf := *p.MLConfidence
		e.MLConfidence = &conf
	}

	return e
}
