// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ExerciseConfig overrides the session targets for one exercise.
type ExerciseConfig struct {
	Reps int `json:"reps"`
	Sets int `json:"sets"`
}

// StartSessionRequest is the start_session command payload.
type StartSessionRequest struct {
	UserID          string           `json:"user_id"`
	Exercises       []string         `json:"exercises"`
	TargetReps      *int             `json:"target_reps,omitempty"`
	TargetSets      *int             `json:"target_sets,omitempty"`
	ExerciseConfigs []ExerciseConfig `json:"exercise_configs,omitempty"`
}

// SelectExerciseRequest is the select_exercise command payload.
type SelectExerciseRequest struct {
	Index int `json:"index"`
}

// StartCalibrationRequest is the start_calibration command payload.
type StartCalibrationRequest struct {
	UserID   string `json:"user_id"`
	Duration int    `json:"duration"`
}

// ProcessFrameRequest is the process_frame command payload. Image is an
// encoded (base64 JPEG) frame.
type ProcessFrameRequest struct {
	Image string `json:"image"`
}

// StartCameraRequest is the start_camera command payload.
type StartCameraRequest struct {
	CameraID int `json:"camera_id"`
}
