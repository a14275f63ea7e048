// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-form-coach/models"
)

// CommandService is the fire-and-forget command surface of the backend.
// Every method returns true only when the command was written to an open
// channel. No method waits for an acknowledgement: session progress is
// observed through inbound events.
type CommandService interface {
	// StartSession asks the backend to start a session for userID over the
	// ordered exercise plan. Options override the backend target defaults.
	StartSession(userID string, exercises []string, opts ...SessionOption) bool

	// SelectExercise switches to the exercise at index in the current plan.
	SelectExercise(index int) bool

	// StopSession ends the session; the backend answers with session_stopped.
	StopSession() bool

	Pause() bool
	Resume() bool

	// StartCalibration samples the body proportions of userID for
	// durationSeconds. A non-positive duration uses the backend default.
	StartCalibration(userID string, durationSeconds int) bool

	// SendFrame submits one encoded (base64 JPEG) camera frame.
	SendFrame(image string) bool

	StartCamera(cameraID int) bool
	StopCamera() bool
}

// HistoryService reads profile and session history from the REST
// collaborator and keeps the most recent history snapshot.
type HistoryService interface {
	// Profile fetches the profile of userID.
	Profile(ctx context.Context, userID string) (models.Profile, error)

	// Refresh fetches the latest history of userID and stores it as the
	// current snapshot.
	Refresh(ctx context.Context, userID string) (models.SessionHistory, error)

	// Latest returns the last snapshot stored by Refresh. ok is false before
	// the first successful refresh.
	Latest() (history models.SessionHistory, ok bool)
}

// HistoryJob periodically refreshes the session history of one user.
type HistoryJob interface {
	// Start launches the background refresh goroutine. It refreshes every
	// interval, defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, userID string, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
