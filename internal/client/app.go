// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/channel"
	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/config"
	"github.com/MKhiriev/go-form-coach/internal/feedback"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/loop"
	"github.com/MKhiriev/go-form-coach/internal/router"
	"github.com/MKhiriev/go-form-coach/internal/service"
	"github.com/MKhiriev/go-form-coach/internal/speech"
	"github.com/MKhiriev/go-form-coach/internal/store"
	"github.com/MKhiriev/go-form-coach/internal/telemetry"
	"github.com/MKhiriev/go-form-coach/internal/utils"
	"github.com/MKhiriev/go-form-coach/internal/workers"
	"github.com/MKhiriev/go-form-coach/models"
)

var _ Client = (*App)(nil)

// App is the coaching client. It owns every component for the lifetime of
// the process.
type App struct {
	cfg        *config.ClientConfig
	log        *logger.Logger
	instanceID string

	loop      *loop.Loop
	channel   *channel.Manager
	router    *router.Router
	stores    *store.Stores
	policy    *feedback.Policy
	speaker   speech.Speaker
	telemetry *telemetry.Queue
	adapter   adapter.CoachAdapter
	services  *service.Services

	unregister func()

	// alerting is only touched on the loop goroutine.
	alerting bool

	mu      sync.Mutex
	runCtx  context.Context
	profile *models.Profile
	bg      sync.WaitGroup
}

// NewApp constructs and wires every component. Nothing is connected until
// Run is called.
func NewApp(cfg *config.ClientConfig, log *logger.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	instanceID := utils.NewUUIDGenerator().Generate()
	log = &logger.Logger{Logger: log.With().Str("instance_id", instanceID).Logger()}

	if o.scheduler == nil {
		o.scheduler = clock.System{}
	}
	if o.dialer == nil {
		o.dialer = channel.NewWSDialer()
	}
	if o.speaker == nil {
		speaker, err := speech.New(cfg.Speech, log)
		if err != nil {
			return nil, fmt.Errorf("create speaker: %w", err)
		}
		o.speaker = speaker
	}
	if o.publisher == nil {
		publisher, err := telemetry.New(cfg.Telemetry, log)
		if err != nil {
			// telemetry is optional; the coach keeps working without it
			log.Warn().Err(err).Str("broker", cfg.Telemetry.Broker).Msg("telemetry disabled")
			publisher = telemetry.NopPublisher{}
		}
		o.publisher = publisher
	}
	if o.coachAdapter == nil && cfg.Adapter.HTTPAddress != "" {
		coachAdapter, err := adapter.NewHTTPCoachAdapter(cfg.Adapter, log)
		if err != nil {
			return nil, fmt.Errorf("create coach adapter: %w", err)
		}
		o.coachAdapter = coachAdapter
	}

	validator, err := router.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("compile payload schemas: %w", err)
	}

	eventLoop := loop.New(o.scheduler, cfg.Workers.QueueSize, log)

	a := &App{
		cfg:        cfg,
		log:        log.Component("app"),
		instanceID: instanceID,
		loop:       eventLoop,
		router:     router.New(validator, log),
		stores:     store.NewStores(eventLoop),
		speaker:    o.speaker,
		telemetry:  telemetry.NewQueue(o.publisher, 0, log),
		adapter:    o.coachAdapter,
	}

	a.channel = channel.NewManager(channel.Config{
		URL:         cfg.Channel.URL,
		BaseDelay:   cfg.Channel.BaseDelay,
		MaxAttempts: cfg.Channel.MaxAttempts,
		DialTimeout: cfg.Channel.DialTimeout,
	}, o.dialer, o.scheduler, log)

	a.policy = feedback.NewPolicy(o.speaker, eventLoop, feedback.Options{
		ThrottleWindow: cfg.Speech.ThrottleWindow,
		Locale:         cfg.Speech.Locale,
		Rate:           cfg.Speech.Rate,
		Pitch:          cfg.Speech.Pitch,
	}, log)

	a.services = service.NewServices(a.channel, o.coachAdapter, log)

	a.wire()

	return a, nil
}

// wire connects the channel to the router, the router to the stores and the
// stores to the feedback policy and telemetry.
func (a *App) wire() {
	a.channel.OnMessage(func(raw []byte) {
		if !a.loop.Post(func() { a.router.Dispatch(raw) }) {
			a.log.Debug().Msg("event loop stopped, inbound message dropped")
		}
	})
	a.channel.OnStateChange(a.onStateChange)

	unregisterStores := a.stores.Register(a.router)
	unsubs := []func(){
		unregisterStores,
		a.router.On(models.MessageVoice, a.onVoice),
		a.router.On(models.MessageSessionStarted, a.onSessionStarted),
		a.router.On(models.MessageSessionStopped, a.onSessionStopped),
	}
	a.unregister = func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}

	a.stores.Feedback.Subscribe(func(fb *models.FeedbackState) {
		a.policy.Evaluate(fb)
	})
	a.stores.Hardware.Subscribe(a.onHardware)
	a.policy.OnBanner(a.onBanner)
}

// Run connects, starts the configured session and blocks until ctx is
// cancelled or the initial connection fails. On the way out the session is
// stopped, the channel disconnected and pending telemetry flushed.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.runCtx = ctx
	a.mu.Unlock()

	if a.services.HistoryJob != nil && a.cfg.Session.UserID != "" {
		a.services.HistoryJob.Start(ctx, a.cfg.Session.UserID, a.cfg.Workers.HistoryInterval)
		defer a.services.HistoryJob.Stop()
	}

	err := workers.New(
		a.loop,
		a.telemetry,
		workers.WorkerFunc(a.runSession),
	).Run(ctx)

	a.shutdown()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runSession owns the channel for the lifetime of Run.
func (a *App) runSession(ctx context.Context) error {
	a.checkBackend(ctx)

	if err := a.channel.Connect(ctx); err != nil {
		return fmt.Errorf("connect channel: %w", err)
	}

	session := a.cfg.Session
	if session.AutoStart() {
		var opts []service.SessionOption
		if session.TargetReps > 0 {
			opts = append(opts, service.WithTargetReps(session.TargetReps))
		}
		if session.TargetSets > 0 {
			opts = append(opts, service.WithTargetSets(session.TargetSets))
		}
		if !a.services.CommandService.StartSession(session.UserID, session.Exercises, opts...) {
			a.log.Warn().Str("user_id", session.UserID).Msg("start_session not sent")
		}
	}

	<-ctx.Done()

	if a.stores.Session.Get().Active {
		a.services.CommandService.StopSession()
	}
	a.channel.Disconnect()

	return nil
}

func (a *App) checkBackend(ctx context.Context) {
	if a.adapter == nil {
		return
	}
	health, err := a.adapter.Health(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("backend health check failed")
		return
	}
	a.log.Info().
		Str("status", health.Status).
		Str("version", health.Version).
		Bool("camera_available", health.CameraAvailable).
		Msg("backend reachable")
}

func (a *App) shutdown() {
	a.unregister()
	a.policy.Reset()
	a.stores.Reset()
	a.bg.Wait()

	if closer, ok := a.speaker.(interface{ Close() }); ok {
		closer.Close()
	}
	a.log.Info().Msg("client stopped")
}

// background runs fn on its own goroutine with the Run context. It is a
// no-op before Run.
func (a *App) background(fn func(ctx context.Context)) {
	a.mu.Lock()
	ctx := a.runCtx
	a.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		fn(ctx)
	}()
}

// Commands returns the command surface.
func (a *App) Commands() service.CommandService {
	return a.services.CommandService
}

// Stores returns the derived state stores.
func (a *App) Stores() *store.Stores {
	return a.stores
}

// Channel returns the channel manager.
func (a *App) Channel() *channel.Manager {
	return a.channel
}

// Router returns the event router for additional subscriptions.
func (a *App) Router() *router.Router {
	return a.router
}

// Policy returns the feedback policy.
func (a *App) Policy() *feedback.Policy {
	return a.policy
}

// Profile returns the profile fetched for the running session, if any.
func (a *App) Profile() (models.Profile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profile == nil {
		return models.Profile{}, false
	}
	return *a.profile, true
}

// History returns the most recently fetched session history, if any.
func (a *App) History() (models.SessionHistory, bool) {
	if a.services.HistoryService == nil {
		return models.SessionHistory{}, false
	}
	return a.services.HistoryService.Latest()
}
