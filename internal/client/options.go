// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/channel"
	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/speech"
	"github.com/MKhiriev/go-form-coach/internal/telemetry"
)

// Option overrides a collaborator built by [NewApp].
type Option func(*options)

type options struct {
	dialer       channel.Dialer
	scheduler    clock.Scheduler
	speaker      speech.Speaker
	publisher    telemetry.Publisher
	coachAdapter adapter.CoachAdapter
}

// WithDialer replaces the websocket dialer.
func WithDialer(d channel.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// WithScheduler replaces the system clock.
func WithScheduler(s clock.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithSpeaker replaces the speaker selected by the speech config.
func WithSpeaker(s speech.Speaker) Option {
	return func(o *options) { o.speaker = s }
}

// WithPublisher replaces the telemetry publisher selected by the telemetry
// config.
func WithPublisher(p telemetry.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithCoachAdapter replaces the REST collaborator.
func WithCoachAdapter(a adapter.CoachAdapter) Option {
	return func(o *options) { o.coachAdapter = a }
}
