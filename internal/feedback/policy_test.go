// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feedback

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/mock"
	"github.com/MKhiriev/go-form-coach/internal/speech"
	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPolicy(t *testing.T) (*Policy, *mock.MockSpeaker, *clock.Fake) {
	t.Helper()
	ctrl := gomock.NewController(t)
	speaker := mock.NewMockSpeaker(ctrl)
	fake := clock.NewFake()
	p := NewPolicy(speaker, fake, Options{Locale: "en-US"}, logger.Nop())
	return p, speaker, fake
}

func classified(label string, confidence float64) *models.FeedbackState {
	return &models.FeedbackState{
		Status:       Classify(label),
		Message:      Correction(label),
		MLClass:      &label,
		MLConfidence: &confidence,
	}
}

// expectSpeak ожидает times пар Cancel → Speak с текстом text
func expectSpeak(speaker *mock.MockSpeaker, text string, times int) {
	for range times {
		gomock.InOrder(
			speaker.EXPECT().Cancel(),
			speaker.EXPECT().Speak(speech.Utterance{Text: text, Locale: "en-US", Rate: 1, Pitch: 1}).Return(nil),
		)
	}
}

func TestPolicy_KneeCaving_SpeaksOnceThenThrottles(t *testing.T) {
	p, speaker, fake := newTestPolicy(t)
	const knee = "Keep your knees aligned over your toes"

	expectSpeak(speaker, knee, 1)

	d := p.Evaluate(classified("Squat Knee Caving", 0.87))
	assert.Equal(t, models.StatusWarning, d.Status)
	assert.Equal(t, knee, d.Text)
	assert.True(t, d.Speak)

	// та же метка в пределах окна не озвучивается
	for range 5 {
		fake.Advance(500 * time.Millisecond)
		d = p.Evaluate(classified("Squat Knee Caving", 0.87))
		assert.False(t, d.Speak)
	}
	assert.True(t, p.Throttled())
}

func TestPolicy_ThrottleExpires(t *testing.T) {
	p, speaker, fake := newTestPolicy(t)
	const knee = "Keep your knees aligned over your toes"

	expectSpeak(speaker, knee, 2)

	assert.True(t, p.Evaluate(classified("Squat Knee Caving", 0.87)).Speak)

	fake.Advance(2999 * time.Millisecond)
	assert.False(t, p.Evaluate(classified("Squat Knee Caving", 0.87)).Speak)

	fake.Advance(time.Millisecond)
	assert.False(t, p.Throttled())
	assert.True(t, p.Evaluate(classified("Squat Knee Caving", 0.87)).Speak)
}

func TestPolicy_Perfect_NeverSpeaksAndClearsFlag(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)

	expectSpeak(speaker, "Keep your back straight", 2)

	assert.True(t, p.Evaluate(classified("Deadlift Rounded Back", 0.9)).Speak)
	require.True(t, p.Throttled())

	d := p.Evaluate(classified("Squat Correct", 0.95))
	assert.Equal(t, models.StatusPerfect, d.Status)
	assert.False(t, d.Speak)
	assert.False(t, p.Throttled())

	// флаг сброшен: новая ошибка озвучивается сразу
	assert.True(t, p.Evaluate(classified("Deadlift Rounded Back", 0.9)).Speak)
}

func TestPolicy_Error_IsSpoken(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)

	expectSpeak(speaker, "Rep not counted: incomplete range", 1)

	d := p.Evaluate(&models.FeedbackState{Status: models.StatusError, Message: "Rep not counted: incomplete range"})
	assert.True(t, d.Speak)
}

func TestPolicy_NilAndNeutral(t *testing.T) {
	p, _, fake := newTestPolicy(t)

	assert.False(t, p.Evaluate(nil).Speak)
	assert.False(t, p.Evaluate(&models.FeedbackState{Status: models.StatusNeutral, Message: "x"}).Speak)

	_, visible := p.Visible()
	assert.False(t, visible)
	assert.Equal(t, 0, fake.Pending())
}

func TestPolicy_NilHidesBanner(t *testing.T) {
	p, speaker, fake := newTestPolicy(t)
	expectSpeak(speaker, "Watch your knees", 1)

	var shown []*Decision
	p.OnBanner(func(d *Decision) { shown = append(shown, d) })

	p.Evaluate(&models.FeedbackState{Status: models.StatusWarning, Message: "Watch your knees"})
	fake.Advance(500 * time.Millisecond)

	// переход (exercise_change, resumed, set_complete) сбрасывает обратную связь в nil
	p.Evaluate(nil)

	_, visible := p.Visible()
	assert.False(t, visible)
	require.Len(t, shown, 2)
	assert.Nil(t, shown[1])
	// таймер скрытия остановлен, окно троттлинга продолжает идти
	assert.True(t, p.Throttled())
	assert.Equal(t, 1, fake.Pending())
}

func TestPolicy_SpeakerPanicIsRecovered(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)

	var shown []*Decision
	p.OnBanner(func(d *Decision) { shown = append(shown, d) })

	speaker.EXPECT().Cancel()
	speaker.EXPECT().Speak(gomock.Any()).Do(func(speech.Utterance) { panic("driver crashed") })

	assert.NotPanics(t, func() {
		d := p.Evaluate(classified("Squat Knee Caving", 0.87))
		assert.True(t, d.Speak)
	})

	// баннер всё равно показан
	require.Len(t, shown, 1)
	assert.Equal(t, "Keep your knees aligned over your toes", shown[0].Text)

	speaker.EXPECT().Cancel().Do(func() { panic("driver gone") })
	assert.NotPanics(t, p.Reset)
}

func TestPolicy_SpeakerFailureIsSwallowed(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)

	speaker.EXPECT().Cancel()
	speaker.EXPECT().Speak(gomock.Any()).Return(errors.New("audio device busy"))

	assert.NotPanics(t, func() {
		d := p.Evaluate(classified("Squat Knee Caving", 0.87))
		assert.True(t, d.Speak)
	})
}

func TestPolicy_BannerAutoHides(t *testing.T) {
	p, _, fake := newTestPolicy(t)

	var shown []*Decision
	p.OnBanner(func(d *Decision) { shown = append(shown, d) })

	p.Evaluate(classified("Squat Correct", 0.95))
	d, ok := p.Visible()
	require.True(t, ok)
	assert.Equal(t, PerfectMessage, d.Text)

	fake.Advance(2999 * time.Millisecond)
	_, ok = p.Visible()
	assert.True(t, ok)

	fake.Advance(time.Millisecond)
	_, ok = p.Visible()
	assert.False(t, ok)

	require.Len(t, shown, 2)
	assert.NotNil(t, shown[0])
	assert.Nil(t, shown[1])
}

func TestPolicy_BannerSupersededResetsHideTimer(t *testing.T) {
	p, _, fake := newTestPolicy(t)

	p.Evaluate(classified("Squat Correct", 0.95))
	fake.Advance(2000 * time.Millisecond)
	p.Evaluate(classified("Squat Correct", 0.96))
	fake.Advance(2000 * time.Millisecond)

	_, ok := p.Visible()
	assert.True(t, ok, "новое сообщение должно продлить показ")

	fake.Advance(1000 * time.Millisecond)
	_, ok = p.Visible()
	assert.False(t, ok)
}

func TestPolicy_SpeakNow_BypassesThrottle(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)

	expectSpeak(speaker, "Keep your knees aligned over your toes", 1)
	expectSpeak(speaker, "Only 3 left!", 1)

	p.Evaluate(classified("Squat Knee Caving", 0.87))
	p.SpeakNow("Only 3 left!")
	p.SpeakNow("")

	assert.True(t, p.Throttled())
}

func TestPolicy_Reset(t *testing.T) {
	p, speaker, fake := newTestPolicy(t)

	expectSpeak(speaker, "Keep your knees aligned over your toes", 1)
	p.Evaluate(classified("Squat Knee Caving", 0.87))

	speaker.EXPECT().Cancel()
	p.Reset()

	assert.False(t, p.Throttled())
	_, ok := p.Visible()
	assert.False(t, ok)
	assert.Equal(t, 0, fake.Pending())
}

func TestPolicy_LabelOnlyFeedback(t *testing.T) {
	p, speaker, _ := newTestPolicy(t)
	label := "Pushup Hip Sag"

	expectSpeak(speaker, "Keep your hips in line with your body", 1)

	d := p.Evaluate(&models.FeedbackState{MLClass: &label})
	assert.Equal(t, models.StatusWarning, d.Status)
	assert.True(t, d.Speak)
}
