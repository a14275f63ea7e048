// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_KnownType(t *testing.T) {
	raw := []byte(`{"type":"exercise_update","data":{"exercise":"squat","phase":"up","rep_count":3,"confidence":0.9,"form_quality":0.8,"ml_label":"knee_valgus"},"timestamp":1700000000.5}`)

	env, err := DecodeEnvelope(raw)
	require.NoError(t, err)

	assert.Equal(t, MessageExerciseUpdate, env.Type)
	require.NotNil(t, env.Timestamp)
	assert.InDelta(t, 1700000000.5, *env.Timestamp, 1e-6)

	p, ok := env.Payload.(*ExerciseUpdatePayload)
	require.True(t, ok)
	assert.Equal(t, "squat", p.Exercise)
	assert.Equal(t, 3, p.RepCount)
	assert.Nil(t, p.SetCount)

	label, ok := p.Classification()
	assert.True(t, ok)
	assert.Equal(t, "knee_valgus", label)
}

func TestDecodeEnvelope_UnknownTypeKeepsData(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"type":"leaderboard","data":{"rank":2}}`))
	require.NoError(t, err)

	assert.Equal(t, MessageType("leaderboard"), env.Type)
	assert.Nil(t, env.Payload)
	assert.JSONEq(t, `{"rank":2}`, string(env.Data))
}

func TestDecodeEnvelope_MissingDataGetsZeroPayload(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"type":"resumed"}`))
	require.NoError(t, err)
	assert.IsType(t, &ResumedPayload{}, env.Payload)

	env, err = DecodeEnvelope([]byte(`{"type":"camera_stopped","data":null}`))
	require.NoError(t, err)
	assert.IsType(t, &CameraStoppedPayload{}, env.Payload)
}

func TestDecodeEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "no type", raw: `{"data":{}}`, wantErr: ErrMissingType},
		{name: "wrong payload shape", raw: `{"type":"rep_count","data":{"count":"three"}}`, wantErr: ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := DecodeEnvelope([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeEnvelope(t *testing.T) {
	ts := time.UnixMilli(1700000000250)

	raw, err := EncodeEnvelope(CommandSelectExercise, SelectExerciseRequest{Index: 2}, ts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"select_exercise","data":{"index":2},"timestamp":1700000000.25}`, string(raw))

	raw, err = EncodeEnvelope(CommandStopSession, nil, time.Time{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"stop_session"}`, string(raw))
}

func TestEncodeEnvelope_StartSessionOmitsUnsetTargets(t *testing.T) {
	raw, err := EncodeEnvelope(CommandStartSession, StartSessionRequest{
		UserID:    "u-1",
		Exercises: []string{"squat", "pushup"},
	}, time.Time{})
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.JSONEq(t, `{"user_id":"u-1","exercises":["squat","pushup"]}`, string(got["data"]))
}

func TestEncodeEnvelope_UnencodableData(t *testing.T) {
	_, err := EncodeEnvelope(CommandProcessFrame, map[string]any{"bad": make(chan int)}, time.Time{})
	assert.Error(t, err)
}
