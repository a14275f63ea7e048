// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FeedbackStatus is the posture status tier.
type FeedbackStatus string

const (
	StatusPerfect FeedbackStatus = "perfect"
	StatusWarning FeedbackStatus = "warning"
	StatusError   FeedbackStatus = "error"
	// StatusNeutral means no classification is available. It is never sent
	// by the backend.
	StatusNeutral FeedbackStatus = "neutral"
)

// BodyTypeUnknown replaces a missing calibration body type.
const BodyTypeUnknown = "unknown"

// ExerciseState is the live exercise progress.
type ExerciseState struct {
	Exercise       string
	Phase          string
	RepCount       int
	SetCount       int
	TargetReps     int
	TargetSets     int
	Confidence     float64
	FormQuality    float64
	FormIssues     []string
	FatigueWarning bool
	FatiguePercent float64
	MLClass        *string
	MLConfidence   *float64
}

// SessionSummary holds the totals reported when a session stops.
type SessionSummary struct {
	TotalReps int     `json:"total_reps"`
	TotalSets int     `json:"total_sets"`
	Calories  float64 `json:"calories"`
}

// SessionState is the exercise/session store value.
type SessionState struct {
	Active        bool
	Paused        bool
	PauseReason   string
	UserID        string
	Exercises     []string
	ExerciseIndex int
	CameraOn      bool

	Exercise ExerciseState
	Summary  *SessionSummary
}

// FeedbackState is the last posture feedback shown to the user.
type FeedbackState struct {
	Status       FeedbackStatus
	Message      string
	Issues       []string
	MLClass      *string
	MLConfidence *float64
	Timestamp    time.Time
}

// CalibrationResult is the normalised calibration outcome. BodyType is
// never empty.
type CalibrationResult struct {
	Success    bool
	Message    string
	Ratios     map[string]float64
	Thresholds map[string]float64
	BodyType   string
}

// CalibrationState tracks a running or finished calibration.
type CalibrationState struct {
	IsCalibrating bool
	Progress      float64
	Status        string
	Collected     int
	Total         int
	Result        *CalibrationResult
}

// HardwareState is the last full hardware snapshot.
type HardwareState struct {
	HeartRate          int     `json:"heart_rate"`
	HeartRateWarning   bool    `json:"heart_rate_warning"`
	IMUTremorDetected  bool    `json:"imu_tremor_detected"`
	IMUTremorIntensity float64 `json:"imu_tremor_intensity"`
	BatteryLevel       float64 `json:"battery_level"`
	EcoMode            bool    `json:"eco_mode"`
	CaloriesBurned     float64 `json:"calories_burned"`
	WaterGlassesSaved  float64 `json:"water_glasses_saved"`
	RealHardware       bool    `json:"real_hardware"`
}

// SafetyAlert reports whether the snapshot carries a hardware-safety warning.
func (h HardwareState) SafetyAlert() bool {
	return h.HeartRateWarning || h.IMUTremorDetected
}

// PoseState is the live keypoint snapshot.
type PoseState struct {
	Detected  bool
	Keypoints map[string]Keypoint
	Angles    map[string]float64
	FPS       float64
	Message   string
}
