// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
)

// SessionOption customises a start_session command.
type SessionOption func(*models.StartSessionRequest)

// WithTargetReps overrides the per-set repetition target.
func WithTargetReps(reps int) SessionOption {
	return func(r *models.StartSessionRequest) {
		r.TargetReps = &reps
	}
}

// WithTargetSets overrides the number of sets per exercise.
func WithTargetSets(sets int) SessionOption {
	return func(r *models.StartSessionRequest) {
		r.TargetSets = &sets
	}
}

// WithExerciseConfigs sets per-exercise targets, in plan order.
func WithExerciseConfigs(configs ...models.ExerciseConfig) SessionOption {
	return func(r *models.StartSessionRequest) {
		r.ExerciseConfigs = append(r.ExerciseConfigs[:0:0], configs...)
	}
}

type commandService struct {
	sender Sender
	logger *logger.Logger
}

// NewCommandService returns a [CommandService] writing through sender.
func NewCommandService(sender Sender, logger *logger.Logger) CommandService {
	return &commandService{sender: sender, logger: logger.Component("commands")}
}

func (s *commandService) StartSession(userID string, exercises []string, opts ...SessionOption) bool {
	if len(exercises) == 0 {
		s.logger.Warn().Str("user_id", userID).Msg("start_session without exercises")
		return false
	}

	req := models.StartSessionRequest{
		UserID:    userID,
		Exercises: append([]string(nil), exercises...),
	}
	for _, opt := range opts {
		opt(&req)
	}

	return s.send(models.CommandStartSession, req)
}

func (s *commandService) SelectExercise(index int) bool {
	if index < 0 {
		s.logger.Warn().Int("index", index).Msg("select_exercise with negative index")
		return false
	}
	return s.send(models.CommandSelectExercise, models.SelectExerciseRequest{Index: index})
}

func (s *commandService) StopSession() bool {
	return s.send(models.CommandStopSession, nil)
}

func (s *commandService) Pause() bool {
	return s.send(models.CommandPause, nil)
}

func (s *commandService) Resume() bool {
	return s.send(models.CommandResume, nil)
}

func (s *commandService) StartCalibration(userID string, durationSeconds int) bool {
	if durationSeconds <= 0 {
		durationSeconds = defaultCalibrationSeconds
	}
	return s.send(models.CommandStartCalibration, models.StartCalibrationRequest{
		UserID:   userID,
		Duration: durationSeconds,
	})
}

func (s *commandService) SendFrame(image string) bool {
	if image == "" {
		return false
	}
	return s.send(models.CommandProcessFrame, models.ProcessFrameRequest{Image: image})
}

func (s *commandService) StartCamera(cameraID int) bool {
	return s.send(models.CommandStartCamera, models.StartCameraRequest{CameraID: cameraID})
}

func (s *commandService) StopCamera() bool {
	return s.send(models.CommandStopCamera, nil)
}

const defaultCalibrationSeconds = 5

func (s *commandService) send(t models.MessageType, data any) bool {
	if !s.sender.IsConnected() {
		s.logger.Debug().Str("type", string(t)).Msg("command dropped, channel not open")
		return false
	}

	ok := s.sender.Send(t, data)
	if !ok {
		s.logger.Debug().Str("type", string(t)).Msg("command not sent")
	}
	return ok
}
