// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceFeedback_ExplicitFeedback(t *testing.T) {
	fb := ReduceFeedback(nil, envelope(t, models.MessageFeedback,
		`{"status":"warning","message":"Watch your knees","issues":["knee_in"],"ml_class":"Squat Knee Caving","ml_confidence":0.87}`))

	require.NotNil(t, fb)
	assert.Equal(t, models.StatusWarning, fb.Status)
	assert.Equal(t, "Watch your knees", fb.Message)
	assert.Equal(t, []string{"knee_in"}, fb.Issues)
	require.NotNil(t, fb.MLClass)
	assert.Equal(t, "Squat Knee Caving", *fb.MLClass)
	assert.Equal(t, testReceivedAt, fb.Timestamp)
}

func TestReduceFeedback_Classification(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		status  models.FeedbackStatus
		message string
	}{
		{"fault", `{"exercise":"squat","phase":"down","rep_count":1,"confidence":1,"form_quality":0.5,"ml_class":"Squat Knee Caving","ml_confidence":0.87}`,
			models.StatusWarning, "Keep your knees aligned over your toes"},
		{"correct", `{"exercise":"squat","phase":"down","rep_count":1,"confidence":1,"form_quality":1,"ml_class":"Squat Correct"}`,
			models.StatusPerfect, "Great form, keep it up!"},
		{"legacy label", `{"exercise":"squat","phase":"down","rep_count":1,"confidence":1,"form_quality":1,"ml_label":"squat_heels_up"}`,
			models.StatusWarning, "Keep your heels on the ground"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := ReduceFeedback(nil, envelope(t, models.MessageExerciseUpdate, tt.data))
			require.NotNil(t, fb)
			assert.Equal(t, tt.status, fb.Status)
			assert.Equal(t, tt.message, fb.Message)
		})
	}
}

func TestReduceFeedback_UpdateWithoutClassKeepsPrevious(t *testing.T) {
	prev := &models.FeedbackState{Status: models.StatusWarning, Message: "m"}

	fb := ReduceFeedback(prev, envelope(t, models.MessageExerciseUpdate,
		`{"exercise":"squat","phase":"down","rep_count":1,"confidence":1,"form_quality":1}`))

	assert.Same(t, prev, fb)
}

func TestReduceFeedback_RepRejectedIsError(t *testing.T) {
	fb := ReduceFeedback(nil, envelope(t, models.MessageRepRejected, `{"reason":"partial_range","message":"Go all the way down"}`))
	require.NotNil(t, fb)
	assert.Equal(t, models.StatusError, fb.Status)
	assert.Equal(t, "Go all the way down", fb.Message)

	fb = ReduceFeedback(nil, envelope(t, models.MessageRepRejected, `{"reason":"partial_range"}`))
	assert.Equal(t, "partial range", fb.Message)
}

func TestReduceFeedback_PausedWithReasonIsWarning(t *testing.T) {
	fb := ReduceFeedback(nil, envelope(t, models.MessagePaused, `{"reason":"heart_rate"}`))
	require.NotNil(t, fb)
	assert.Equal(t, models.StatusWarning, fb.Status)
	assert.Contains(t, fb.Message, "heart rate")

	prev := &models.FeedbackState{Status: models.StatusPerfect}
	assert.Same(t, prev, ReduceFeedback(prev, envelope(t, models.MessagePaused, `{}`)))
}

func TestReduceFeedback_TransitionsClear(t *testing.T) {
	prev := &models.FeedbackState{Status: models.StatusWarning, Message: "stale"}

	for _, tc := range []struct {
		typ  models.MessageType
		data string
	}{
		{models.MessageResumed, ``},
		{models.MessageExerciseChange, `{"index":1}`},
		{models.MessageSetComplete, `{"set":1,"next_set":2}`},
		{models.MessageSessionStarted, `{"user_id":"u","exercises":["squat"],"current_exercise":"squat","target_reps":10,"target_sets":3}`},
		{models.MessageSessionStopped, `{"total_reps":1,"total_sets":1,"calories":0.1}`},
	} {
		t.Run(string(tc.typ), func(t *testing.T) {
			assert.Nil(t, ReduceFeedback(prev, envelope(t, tc.typ, tc.data)))
		})
	}
}

func TestReduceFeedback_LastWriterWins(t *testing.T) {
	fb := ReduceFeedback(nil, envelope(t, models.MessageFeedback, `{"status":"perfect","message":"ok"}`))
	fb = ReduceFeedback(fb, envelope(t, models.MessageRepRejected, `{"reason":"too_fast","message":"Slow down"}`))

	assert.Equal(t, models.StatusError, fb.Status)
	assert.Equal(t, "Slow down", fb.Message)
}
