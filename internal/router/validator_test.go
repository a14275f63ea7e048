// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_EmbeddedSchemasCompile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	for _, typ := range []models.MessageType{
		models.MessageKeypoints,
		models.MessageExerciseUpdate,
		models.MessageFeedback,
		models.MessageCalibrationComplete,
		models.MessageSessionStopped,
	} {
		assert.True(t, v.HasSchema(typ), typ)
	}
	assert.False(t, v.HasSchema(models.MessageResumed))
}

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		typ     models.MessageType
		data    string
		wantErr bool
	}{
		{name: "partial exercise update", typ: models.MessageExerciseUpdate, data: `{"exercise":"squat","events":[]}`},
		{name: "ml label null", typ: models.MessageExerciseUpdate, data: `{"exercise":"squat","ml_label":null}`},
		{name: "exercise update without exercise", typ: models.MessageExerciseUpdate, data: `{"phase":"down"}`, wantErr: true},
		{name: "ml confidence out of range", typ: models.MessageExerciseUpdate, data: `{"exercise":"squat","ml_confidence":1.5}`, wantErr: true},
		{name: "body type null", typ: models.MessageCalibrationComplete, data: `{"success":true,"body_type":null}`},
		{name: "paused without data", typ: models.MessagePaused, data: ``},
		{name: "session stopped incomplete", typ: models.MessageSessionStopped, data: `{"total_reps":3}`, wantErr: true},
		{name: "keypoint missing y", typ: models.MessageKeypoints, data: `{"keypoints":{"nose":{"x":0.1}}}`, wantErr: true},
		{name: "integer count", typ: models.MessageRepCount, data: `{"count":12,"target":12}`},
		{name: "fractional count", typ: models.MessageRepCount, data: `{"count":2.5}`, wantErr: true},
		{name: "malformed data", typ: models.MessageRepCount, data: `{"count":`, wantErr: true},
		{name: "unknown type", typ: "mystery", data: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := models.Envelope{Type: tt.typ}
			if tt.data != "" {
				env.Data = json.RawMessage(tt.data)
			}

			err := v.Validate(env)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSchemaViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_BadSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"s/voice.json": &fstest.MapFile{Data: []byte(`{"type": 12}`)},
	}

	_, err := newValidatorFS(fsys, "s")

	assert.Error(t, err)
}
