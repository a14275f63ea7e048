// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feedback

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/speech"
	"github.com/MKhiriev/go-form-coach/models"
)

const (
	DefaultThrottleWindow = 3000 * time.Millisecond
	DefaultHideAfter      = 3000 * time.Millisecond
)

// Options tunes a [Policy]. Zero values take the defaults.
type Options struct {
	ThrottleWindow time.Duration
	HideAfter      time.Duration
	Locale         string
	Rate           float64
	Pitch          float64
}

// Decision is the outcome of one evaluation.
type Decision struct {
	Status models.FeedbackStatus
	Text   string
	// Speak reports whether Text was handed to the speaker.
	Speak bool
}

// Banner receives the visible feedback. A nil decision hides the banner.
type Banner func(d *Decision)

// Policy decides which corrections are spoken.
//
// A warning or error is spoken only when the "already spoken" flag is clear.
// Speaking sets the flag; it clears after the throttle window or as soon as a
// perfect status is seen. Every utterance cancels the previous one first.
type Policy struct {
	speaker speech.Speaker
	sched   clock.Scheduler
	opts    Options
	log     *logger.Logger

	mu          sync.Mutex
	spoken      bool
	spokenTimer clock.Timer
	visible     *Decision
	hideTimer   clock.Timer
	banner      Banner
}

func NewPolicy(speaker speech.Speaker, sched clock.Scheduler, opts Options, log *logger.Logger) *Policy {
	if opts.ThrottleWindow <= 0 {
		opts.ThrottleWindow = DefaultThrottleWindow
	}
	if opts.HideAfter <= 0 {
		opts.HideAfter = DefaultHideAfter
	}
	if opts.Rate == 0 {
		opts.Rate = 1
	}
	if opts.Pitch == 0 {
		opts.Pitch = 1
	}

	return &Policy{
		speaker: speaker,
		sched:   sched,
		opts:    opts,
		log:     log.Component("feedback"),
	}
}

// OnBanner installs the visible-feedback callback. It is called outside the
// policy lock.
func (p *Policy) OnBanner(b Banner) {
	p.mu.Lock()
	p.banner = b
	p.mu.Unlock()
}

// Evaluate applies the policy to the current feedback value. A nil value
// hides the banner; a neutral status leaves it alone. Neither is spoken.
func (p *Policy) Evaluate(fb *models.FeedbackState) Decision {
	if fb == nil {
		p.mu.Lock()
		banner := p.hideLocked()
		p.mu.Unlock()
		if banner != nil {
			banner(nil)
		}
		return Decision{Status: models.StatusNeutral}
	}

	d := Decision{Status: fb.Status, Text: fb.Message}
	if d.Text == "" && fb.MLClass != nil {
		d.Text = Correction(*fb.MLClass)
	}
	if d.Status == "" && fb.MLClass != nil {
		d.Status = Classify(*fb.MLClass)
	}

	p.mu.Lock()
	switch d.Status {
	case models.StatusPerfect:
		p.clearSpokenLocked()
	case models.StatusWarning, models.StatusError:
		if !p.spoken && d.Text != "" {
			d.Speak = true
			p.markSpokenLocked(d.Text)
		}
	default:
		p.mu.Unlock()
		return d
	}
	shown := d
	banner := p.showLocked(&shown)
	p.mu.Unlock()

	if d.Speak {
		p.say(d.Text)
	}
	if banner != nil {
		banner(&shown)
	}

	return d
}

// SpeakNow speaks text immediately, cancelling the utterance in progress. It
// bypasses the throttle and does not set the flag.
func (p *Policy) SpeakNow(text string) {
	if text == "" {
		return
	}
	p.say(text)
}

// Visible returns the banner currently shown.
func (p *Policy) Visible() (Decision, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visible == nil {
		return Decision{}, false
	}
	return *p.visible, true
}

// Throttled reports whether the "already spoken" flag is set.
func (p *Policy) Throttled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spoken
}

// Reset stops every timer, hides the banner and cancels speech.
func (p *Policy) Reset() {
	p.mu.Lock()
	p.clearSpokenLocked()
	banner := p.hideLocked()
	p.mu.Unlock()

	p.cancelSpeech()
	if banner != nil {
		banner(nil)
	}
}

func (p *Policy) cancelSpeech() {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("speaker cancel panicked")
		}
	}()
	p.speaker.Cancel()
}

// say cancels the utterance in progress and speaks text. Speaker errors and
// panics are logged and go no further.
func (p *Policy) say(text string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("text", text).Msg("speaker panicked")
		}
	}()

	p.speaker.Cancel()
	err := p.speaker.Speak(speech.Utterance{
		Text:   text,
		Locale: p.opts.Locale,
		Rate:   p.opts.Rate,
		Pitch:  p.opts.Pitch,
	})
	if err != nil {
		p.log.Error().Err(err).Str("text", text).Msg("speak failed")
	}
}

func (p *Policy) markSpokenLocked(text string) {
	if p.spokenTimer != nil {
		p.spokenTimer.Stop()
	}
	p.spoken = true
	p.log.Debug().Str("text", text).Dur("window", p.opts.ThrottleWindow).Msg("correction spoken")

	var t clock.Timer
	t = p.sched.AfterFunc(p.opts.ThrottleWindow, func() {
		p.mu.Lock()
		if p.spokenTimer == t {
			p.spoken = false
			p.spokenTimer = nil
		}
		p.mu.Unlock()
	})
	p.spokenTimer = t
}

func (p *Policy) clearSpokenLocked() {
	if p.spokenTimer != nil {
		p.spokenTimer.Stop()
		p.spokenTimer = nil
	}
	p.spoken = false
}

// showLocked installs d as the banner and restarts the hide timer. It returns
// the callback to notify, if any.
func (p *Policy) showLocked(d *Decision) Banner {
	if p.hideTimer != nil {
		p.hideTimer.Stop()
	}
	p.visible = d

	var t clock.Timer
	t = p.sched.AfterFunc(p.opts.HideAfter, func() {
		p.mu.Lock()
		if p.hideTimer != t {
			p.mu.Unlock()
			return
		}
		banner := p.hideLocked()
		p.mu.Unlock()
		if banner != nil {
			banner(nil)
		}
	})
	p.hideTimer = t

	return p.banner
}

func (p *Policy) hideLocked() Banner {
	if p.hideTimer != nil {
		p.hideTimer.Stop()
		p.hideTimer = nil
	}
	if p.visible == nil {
		return nil
	}
	p.visible = nil
	return p.banner
}
