// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Payload is the typed variant carried by an inbound [Envelope].
// Each implementation reports the message type it belongs to.
type Payload interface {
	MessageType() MessageType
}

var payloadFactories = map[MessageType]func() Payload{
	MessageKeypoints:           func() Payload { return &KeypointsPayload{} },
	MessageNoDetection:         func() Payload { return &NoDetectionPayload{} },
	MessageExerciseUpdate:      func() Payload { return &ExerciseUpdatePayload{} },
	MessageRepCount:            func() Payload { return &RepCountPayload{} },
	MessageFatigueWarning:      func() Payload { return &FatigueWarningPayload{} },
	MessageFeedback:            func() Payload { return &FeedbackPayload{} },
	MessageHardwareStatus:      func() Payload { return &HardwareStatusPayload{} },
	MessageCalibrationProgress: func() Payload { return &CalibrationProgressPayload{} },
	MessageCalibrationComplete: func() Payload { return &CalibrationCompletePayload{} },
	MessageVoice:               func() Payload { return &VoicePayload{} },
	MessagePaused:              func() Payload { return &PausedPayload{} },
	MessageResumed:             func() Payload { return &ResumedPayload{} },
	MessageExerciseChange:      func() Payload { return &ExerciseChangePayload{} },
	MessageSetComplete:         func() Payload { return &SetCompletePayload{} },
	MessageSessionStarted:      func() Payload { return &SessionStartedPayload{} },
	MessageSessionStopped:      func() Payload { return &SessionStoppedPayload{} },
	MessageRepRejected:         func() Payload { return &RepRejectedPayload{} },
	MessageCameraStarted:       func() Payload { return &CameraStartedPayload{} },
	MessageCameraStopped:       func() Payload { return &CameraStoppedPayload{} },
}

// Keypoint is one normalised joint position.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// KeypointsPayload is the per-frame pose snapshot.
type KeypointsPayload struct {
	Keypoints map[string]Keypoint `json:"keypoints"`
	Angles    map[string]float64  `json:"angles"`
	FPS       float64             `json:"fps"`
}

func (KeypointsPayload) MessageType() MessageType { return MessageKeypoints }

// NoDetectionPayload reports that no subject was found in the frame.
type NoDetectionPayload struct {
	Message string `json:"message"`
}

func (NoDetectionPayload) MessageType() MessageType { return MessageNoDetection }

// ExerciseUpdatePayload is a (possibly partial) exercise state update.
//
// Exercise, Phase, RepCount, Confidence and FormQuality are present in every
// update. Pointer and slice fields are optional: nil means "not sent".
type ExerciseUpdatePayload struct {
	Exercise    string  `json:"exercise"`
	Phase       string  `json:"phase"`
	RepCount    int     `json:"rep_count"`
	Confidence  float64 `json:"confidence"`
	FormQuality float64 `json:"form_quality"`

	SetCount       *int     `json:"set_count,omitempty"`
	TargetReps     *int     `json:"target_reps,omitempty"`
	TargetSets     *int     `json:"target_sets,omitempty"`
	FeedbackCodes  []string `json:"feedback_codes,omitempty"`
	FatigueWarning *bool    `json:"fatigue_warning,omitempty"`
	FatiguePercent *float64 `json:"fatigue_percent,omitempty"`
	MLLabel        *string  `json:"ml_label,omitempty"`
	MLClass        *string  `json:"ml_class,omitempty"`
	MLConfidence   *float64 `json:"ml_confidence,omitempty"`
	Visibility     *float64 `json:"visibility,omitempty"`
	AvgRepTime     *float64 `json:"avg_rep_time,omitempty"`
}

func (ExerciseUpdatePayload) MessageType() MessageType { return MessageExerciseUpdate }

// Classification returns the ML class label, accepting either the
// "ml_class" or the legacy "ml_label" member. ok is false when neither is set
// or the label is empty.
func (p ExerciseUpdatePayload) Classification() (label string, ok bool) {
	if p.MLClass != nil && *p.MLClass != "" {
		return *p.MLClass, true
	}
	if p.MLLabel != nil && *p.MLLabel != "" {
		return *p.MLLabel, true
	}
	return "", false
}

// RepCountPayload reports a completed repetition.
type RepCountPayload struct {
	Count  int  `json:"count"`
	Target *int `json:"target,omitempty"`
	Set    *int `json:"set,omitempty"`
}

func (RepCountPayload) MessageType() MessageType { return MessageRepCount }

// FatigueWarningPayload reports a rep-speed slowdown.
type FatigueWarningPayload struct {
	SlowdownPercent float64 `json:"slowdown_percent"`
}

func (FatigueWarningPayload) MessageType() MessageType { return MessageFatigueWarning }

// FeedbackPayload is an explicit posture feedback message.
type FeedbackPayload struct {
	Status       FeedbackStatus `json:"status"`
	Message      string         `json:"message"`
	Issues       []string       `json:"issues,omitempty"`
	MLClass      *string        `json:"ml_class,omitempty"`
	MLConfidence *float64       `json:"ml_confidence,omitempty"`
}

func (FeedbackPayload) MessageType() MessageType { return MessageFeedback }

// HardwareStatusPayload is a full hardware snapshot.
type HardwareStatusPayload struct {
	HardwareState
}

func (HardwareStatusPayload) MessageType() MessageType { return MessageHardwareStatus }

// CalibrationProgressPayload reports calibration sampling progress.
type CalibrationProgressPayload struct {
	Progress  float64 `json:"progress"`
	Status    string  `json:"status"`
	Collected int     `json:"collected"`
	Total     int     `json:"total"`
}

func (CalibrationProgressPayload) MessageType() MessageType { return MessageCalibrationProgress }

// CalibrationCompletePayload carries the calibration outcome. BodyType may be
// missing or null upstream.
type CalibrationCompletePayload struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Ratios     map[string]float64 `json:"ratios,omitempty"`
	Thresholds map[string]float64 `json:"thresholds,omitempty"`
	BodyType   *string            `json:"body_type,omitempty"`
}

func (CalibrationCompletePayload) MessageType() MessageType { return MessageCalibrationComplete }

// VoicePayload is text the backend wants spoken as-is.
type VoicePayload struct {
	Text string `json:"text"`
}

func (VoicePayload) MessageType() MessageType { return MessageVoice }

// PausedPayload reports a pause; Reason is set for safety pauses.
type PausedPayload struct {
	Reason string `json:"reason,omitempty"`
}

func (PausedPayload) MessageType() MessageType { return MessagePaused }

// ResumedPayload reports that the session resumed.
type ResumedPayload struct{}

func (ResumedPayload) MessageType() MessageType { return MessageResumed }

// ExerciseChangePayload reports a switch to another exercise of the session.
type ExerciseChangePayload struct {
	Index      int    `json:"index"`
	Name       string `json:"name,omitempty"`
	Immediate  bool   `json:"immediate,omitempty"`
	TargetReps *int   `json:"target_reps,omitempty"`
	TargetSets *int   `json:"target_sets,omitempty"`
}

func (ExerciseChangePayload) MessageType() MessageType { return MessageExerciseChange }

// SetCompletePayload reports that a set finished.
type SetCompletePayload struct {
	Set     int `json:"set"`
	NextSet int `json:"next_set"`
}

func (SetCompletePayload) MessageType() MessageType { return MessageSetComplete }

// SessionStartedPayload acknowledges start_session.
type SessionStartedPayload struct {
	UserID          string   `json:"user_id"`
	Exercises       []string `json:"exercises"`
	CurrentExercise string   `json:"current_exercise"`
	TargetReps      int      `json:"target_reps"`
	TargetSets      int      `json:"target_sets"`
}

func (SessionStartedPayload) MessageType() MessageType { return MessageSessionStarted }

// SessionStoppedPayload carries the session totals.
type SessionStoppedPayload struct {
	TotalReps int     `json:"total_reps"`
	TotalSets int     `json:"total_sets"`
	Calories  float64 `json:"calories"`
}

func (SessionStoppedPayload) MessageType() MessageType { return MessageSessionStopped }

// RepRejectedPayload reports a repetition that did not count.
type RepRejectedPayload struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (RepRejectedPayload) MessageType() MessageType { return MessageRepRejected }

// CameraStartedPayload acknowledges start_camera.
type CameraStartedPayload struct {
	CameraID int `json:"camera_id"`
}

func (CameraStartedPayload) MessageType() MessageType { return MessageCameraStarted }

// CameraStoppedPayload acknowledges stop_camera.
type CameraStoppedPayload struct{}

func (CameraStoppedPayload) MessageType() MessageType { return MessageCameraStopped }
