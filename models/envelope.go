// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MessageType selects how an [Envelope] is routed and which payload shape its
// data carries.
type MessageType string

// Wildcard is the pseudo message type that subscribes to every envelope.
const Wildcard MessageType = "*"

// Inbound message types produced by the analysis backend.
const (
	MessageKeypoints           MessageType = "keypoints"
	MessageNoDetection         MessageType = "no_detection"
	MessageExerciseUpdate      MessageType = "exercise_update"
	MessageRepCount            MessageType = "rep_count"
	MessageFatigueWarning      MessageType = "fatigue_warning"
	MessageFeedback            MessageType = "feedback"
	MessageHardwareStatus      MessageType = "hardware_status"
	MessageCalibrationProgress MessageType = "calibration_progress"
	MessageCalibrationComplete MessageType = "calibration_complete"
	MessageVoice               MessageType = "voice"
	MessagePaused              MessageType = "paused"
	MessageResumed             MessageType = "resumed"
	MessageExerciseChange      MessageType = "exercise_change"
	MessageSetComplete         MessageType = "set_complete"
	MessageSessionStarted      MessageType = "session_started"
	MessageSessionStopped      MessageType = "session_stopped"
	MessageRepRejected         MessageType = "rep_rejected"
	MessageCameraStarted       MessageType = "camera_started"
	MessageCameraStopped       MessageType = "camera_stopped"
)

// Outbound command types consumed by the analysis backend.
const (
	CommandStartSession     MessageType = "start_session"
	CommandSelectExercise   MessageType = "select_exercise"
	CommandStopSession      MessageType = "stop_session"
	CommandPause            MessageType = "pause"
	CommandResume           MessageType = "resume"
	CommandStartCalibration MessageType = "start_calibration"
	CommandProcessFrame     MessageType = "process_frame"
	CommandStartCamera      MessageType = "start_camera"
	CommandStopCamera       MessageType = "stop_camera"
)

var (
	// ErrMissingType is returned by [DecodeEnvelope] when the raw message has
	// no "type" field.
	ErrMissingType = errors.New("envelope has no type")
	// ErrInvalidPayload is returned by [DecodeEnvelope] when "data" does not
	// match the payload shape registered for the envelope type.
	ErrInvalidPayload = errors.New("envelope payload does not match its type")
)

// Envelope is the {type, data, timestamp} unit exchanged over the channel.
//
// Data is kept verbatim so that handlers for unknown types (and wildcard
// subscribers) still see the original payload. Payload holds the typed
// variant decoded for known inbound types and is nil otherwise.
type Envelope struct {
	Type      MessageType
	Data      json.RawMessage
	Timestamp *float64

	// Payload is the typed payload for known inbound types.
	Payload Payload

	// ReceivedAt is stamped by the router when the envelope is decoded.
	ReceivedAt time.Time
}

type wireEnvelope struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp *float64        `json:"timestamp,omitempty"`
}

// DecodeEnvelope parses a raw transport message into an [Envelope] and, for
// known inbound types, decodes data into the registered payload variant.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if w.Type == "" {
		return Envelope{}, ErrMissingType
	}

	env := Envelope{Type: w.Type, Data: w.Data, Timestamp: w.Timestamp}

	newPayload, ok := payloadFactories[w.Type]
	if !ok {
		return env, nil
	}

	payload := newPayload()
	if hasData(w.Data) {
		if err := json.Unmarshal(w.Data, payload); err != nil {
			return Envelope{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, w.Type, err)
		}
	}
	env.Payload = payload

	return env, nil
}

// EncodeEnvelope serialises an outbound message. A nil data value is sent
// without a "data" member; ts is written as Unix seconds.
func EncodeEnvelope(t MessageType, data any, ts time.Time) ([]byte, error) {
	w := wireEnvelope{Type: t}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s data: %w", t, err)
		}
		w.Data = raw
	}
	if !ts.IsZero() {
		sec := float64(ts.UnixMilli()) / 1000
		w.Timestamp = &sec
	}

	return json.Marshal(w)
}

func hasData(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
