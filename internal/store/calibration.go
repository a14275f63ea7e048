// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"maps"

	"github.com/MKhiriev/go-form-coach/models"
)

const calibrationComplete = "complete"

// ReduceCalibration tracks calibration progress and installs the result.
// The result's body type is never empty.
func ReduceCalibration(c models.CalibrationState, env models.Envelope) models.CalibrationState {
	switch p := env.Payload.(type) {
	case *models.CalibrationProgressPayload:
		if !c.IsCalibrating {
			c.Result = nil
		}
		c.IsCalibrating = true
		c.Progress = clamp01(p.Progress)
		c.Status = p.Status
		c.Collected = p.Collected
		c.Total = p.Total

	case *models.CalibrationCompletePayload:
		bodyType := models.BodyTypeUnknown
		if p.BodyType != nil && *p.BodyType != "" {
			bodyType = *p.BodyType
		}
		c.IsCalibrating = false
		c.Progress = 1
		c.Status = calibrationComplete
		c.Result = &models.CalibrationResult{
			Success:    p.Success,
			Message:    p.Message,
			Ratios:     maps.Clone(p.Ratios),
			Thresholds: maps.Clone(p.Thresholds),
			BodyType:   bodyType,
		}
	}

	return c
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
