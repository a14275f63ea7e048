// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/models"
)

// Subscriber registers envelope handlers by type. It is satisfied by
// *router.Router.
type Subscriber interface {
	On(t models.MessageType, h func(models.Envelope)) func()
}

// Stores groups every derived state store.
type Stores struct {
	Session     *SessionStore
	Feedback    *Store[*models.FeedbackState]
	Calibration *Store[models.CalibrationState]
	Hardware    *Store[*models.HardwareState]
	Pose        *Store[models.PoseState]
}

// NewStores builds neutral stores. Timers are scheduled on sched.
func NewStores(sched clock.Scheduler) *Stores {
	return &Stores{
		Session:     NewSessionStore(sched),
		Feedback:    New[*models.FeedbackState](nil, ReduceFeedback, WithEqual(sameFeedback)),
		Calibration: New(models.CalibrationState{}, ReduceCalibration),
		Hardware:    New[*models.HardwareState](nil, ReduceHardware),
		Pose:        New(models.PoseState{}, ReducePose),
	}
}

// sameFeedback treats an untouched pointer as no change: frames that carry
// no classification must not re-run the feedback policy.
func sameFeedback(a, b *models.FeedbackState) bool {
	return a == b
}

var (
	sessionTypes = []models.MessageType{
		models.MessageExerciseUpdate,
		models.MessageRepCount,
		models.MessageFatigueWarning,
		models.MessageFeedback,
		models.MessageSessionStarted,
		models.MessageExerciseChange,
		models.MessageSetComplete,
		models.MessagePaused,
		models.MessageResumed,
		models.MessageSessionStopped,
		models.MessageCameraStarted,
		models.MessageCameraStopped,
	}
	feedbackTypes = []models.MessageType{
		models.MessageFeedback,
		models.MessageExerciseUpdate,
		models.MessageRepRejected,
		models.MessagePaused,
		models.MessageResumed,
		models.MessageExerciseChange,
		models.MessageSetComplete,
		models.MessageSessionStarted,
		models.MessageSessionStopped,
	}
	calibrationTypes = []models.MessageType{
		models.MessageCalibrationProgress,
		models.MessageCalibrationComplete,
	}
	hardwareTypes = []models.MessageType{models.MessageHardwareStatus}
	poseTypes     = []models.MessageType{models.MessageKeypoints, models.MessageNoDetection}
)

// Register subscribes every store to the types it reduces and returns a
// function that removes all the registrations.
func (s *Stores) Register(sub Subscriber) func() {
	var unsubs []func()
	on := func(types []models.MessageType, apply func(models.Envelope)) {
		for _, t := range types {
			unsubs = append(unsubs, sub.On(t, apply))
		}
	}

	on(sessionTypes, func(env models.Envelope) { s.Session.Apply(env) })
	on(feedbackTypes, func(env models.Envelope) { s.Feedback.Apply(env) })
	on(calibrationTypes, func(env models.Envelope) { s.Calibration.Apply(env) })
	on(hardwareTypes, func(env models.Envelope) { s.Hardware.Apply(env) })
	on(poseTypes, func(env models.Envelope) { s.Pose.Apply(env) })

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Reset returns every store to its neutral value.
func (s *Stores) Reset() {
	s.Session.Reset()
	s.Feedback.Reset()
	s.Calibration.Reset()
	s.Hardware.Reset()
	s.Pose.Reset()
}
