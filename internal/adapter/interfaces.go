// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the REST collaborator used next to the realtime
// channel: profile reads and updates, session history and the backend health
// check.
//
// The primary abstraction is [CoachAdapter], which decouples the service layer
// from the underlying protocol. [NewHTTPCoachAdapter] is the HTTP/REST
// implementation built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrBadRequest] for 400/422).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-form-coach/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/coach_adapter_mock.go -package=mock

// CoachAdapter defines transport-agnostic communication with the backend REST
// API. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type CoachAdapter interface {
	// Health fetches the backend liveness report. It is used before the
	// realtime channel is opened to surface a missing backend early.
	Health(ctx context.Context) (models.HealthCheck, error)

	// GetProfile returns the profile of userID. Returns [ErrNotFound]
	// (wrapped) when no such profile exists.
	GetProfile(ctx context.Context, userID string) (models.Profile, error)

	// UpdateProfile applies a partial update to the profile of userID.
	// Returns an error if the server rejects the update or reports failure.
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error

	// GetHistory returns at most limit of the most recent sessions of userID
	// together with the aggregated totals. A limit below one asks for the
	// server default.
	GetHistory(ctx context.Context, userID string, limit int) (models.SessionHistory, error)
}
