// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile is the user profile kept by the REST collaborator.
type Profile struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Ratios     map[string]float64 `json:"ratios,omitempty"`
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
	BodyType   *string            `json:"body_type,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged
// by the server.
type ProfileUpdate struct {
	Name       *string            `json:"name,omitempty"`
	Ratios     map[string]float64 `json:"ratios,omitempty"`
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
	BodyType   *string            `json:"body_type,omitempty"`
}

// SessionRecord is one persisted workout.
type SessionRecord struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	Exercise     string    `json:"exercise"`
	Reps         int       `json:"reps"`
	Sets         int       `json:"sets"`
	CaloriesEst  float64   `json:"calories_est"`
	FatigueScore float64   `json:"fatigue_score"`
	Duration     int       `json:"duration"`
}

// SessionHistory is the aggregated history returned by the REST
// collaborator.
type SessionHistory struct {
	UserID        string          `json:"user_id"`
	TotalSessions int             `json:"total_sessions"`
	TotalReps     int             `json:"total_reps"`
	TotalCalories float64         `json:"total_calories"`
	AvgFatigue    float64         `json:"avg_fatigue"`
	Sessions      []SessionRecord `json:"sessions"`
}

// HealthCheck is the backend liveness report.
type HealthCheck struct {
	Status          string          `json:"status"`
	Version         string          `json:"version"`
	CameraAvailable bool            `json:"camera_available"`
	ModelsLoaded    map[string]bool `json:"models_loaded,omitempty"`
}

// APIResponse is the generic acknowledgement returned by mutating REST
// calls.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
