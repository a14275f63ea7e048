// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"maps"

	"github.com/MKhiriev/go-form-coach/models"
)

// ReducePose replaces the keypoint snapshot. no_detection clears the
// keypoints but keeps the last frame rate.
func ReducePose(s models.PoseState, env models.Envelope) models.PoseState {
	switch p := env.Payload.(type) {
	case *models.KeypointsPayload:
		return models.PoseState{
			Detected:  true,
			Keypoints: maps.Clone(p.Keypoints),
			Angles:    maps.Clone(p.Angles),
			FPS:       p.FPS,
		}

	case *models.NoDetectionPayload:
		return models.PoseState{
			FPS:     s.FPS,
			Message: p.Message,
		}
	}

	return s
}
