// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-form-coach/models"

// ReduceHardware keeps the last full hardware snapshot; nothing is merged.
func ReduceHardware(h *models.HardwareState, env models.Envelope) *models.HardwareState {
	if p, ok := env.Payload.(*models.HardwareStatusPayload); ok {
		snapshot := p.HardwareState
		return &snapshot
	}
	return h
}
