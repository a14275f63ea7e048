// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

const connectKey = "connect"

// Config holds the connection and backoff parameters.
type Config struct {
	URL string
	// BaseDelay is the delay before the first retry; retry n waits
	// BaseDelay * 2^(n-1).
	BaseDelay time.Duration
	// MaxAttempts is the number of retries after a drop before giving up.
	MaxAttempts int
	// DialTimeout bounds a single connection attempt.
	DialTimeout time.Duration
}

// MessageHandler receives every raw inbound message in transport order.
type MessageHandler func(raw []byte)

// StateHandler is notified on every state transition. err is a
// [*ConnectionError] when the transition was caused by a failed attempt or a
// drop, and wraps [ErrGivenUp] for the transition to GivenUp.
type StateHandler func(state models.ConnectionState, err error)

// Manager is the Channel Manager. The zero value is not usable; construct it
// with [NewManager].
type Manager struct {
	cfg    Config
	dialer Dialer
	sched  clock.Scheduler
	log    *logger.Logger
	now    func() time.Time

	flight singleflight.Group

	mu         sync.Mutex
	state      models.ConnectionState
	conn       Conn
	gen        uint64
	attempt    int
	backoff    retry.Backoff
	retryTimer clock.Timer
	// joined is set when Connect waits on an attempt started by a retry;
	// that attempt then fails the way a manual one does.
	joined    bool
	onMessage MessageHandler
	onState   StateHandler
	pending   []stateEvent

	// writeMu serialises writes on conn.
	writeMu sync.Mutex
}

type stateEvent struct {
	state models.ConnectionState
	err   error
}

// NewManager constructs a disconnected Manager. Retry timers are scheduled on
// sched.
func NewManager(cfg Config, dialer Dialer, sched clock.Scheduler, log *logger.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		dialer: dialer,
		sched:  sched,
		log:    log.Component("channel"),
		now:    time.Now,
		state:  models.Disconnected,
	}
}

// OnMessage installs the inbound message handler. Handlers run on the
// transport read goroutine and must not block.
func (m *Manager) OnMessage(h MessageHandler) {
	m.mu.Lock()
	m.onMessage = h
	m.mu.Unlock()
}

// OnStateChange installs the state transition handler.
func (m *Manager) OnStateChange(h StateHandler) {
	m.mu.Lock()
	m.onState = h
	m.mu.Unlock()
}

// State returns the current connection state.
func (m *Manager) State() models.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsConnected reports whether the state is Open.
func (m *Manager) IsConnected() bool {
	return m.State() == models.Open
}

// Attempt returns the number of retries scheduled since the last successful
// open.
func (m *Manager) Attempt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt
}

// Connect opens the connection. It returns nil immediately when already
// open and joins the in-flight attempt when one exists, so at most one
// transport is ever being opened. A failed Connect returns a
// [*ConnectionError] and leaves the manager Disconnected without scheduling a
// retry, even when it joined an attempt started by a scheduled retry.
// Calling Connect from Reconnecting or GivenUp cancels the pending retry and
// starts over with a fresh retry budget.
//
// ctx only bounds how long the caller waits; the attempt itself is bounded by
// Config.DialTimeout.
func (m *Manager) Connect(ctx context.Context) error {
	if m.cfg.URL == "" {
		return &ConnectionError{URL: m.cfg.URL, Err: ErrEmptyURL}
	}

	m.mu.Lock()
	switch m.state {
	case models.Open:
		m.mu.Unlock()
		return nil
	case models.Reconnecting, models.GivenUp:
		m.stopRetryLocked()
		m.resetBackoffLocked()
	case models.Connecting:
		m.joined = true
	}
	m.mu.Unlock()

	ch := m.flight.DoChan(connectKey, func() (any, error) {
		return nil, m.dial(true)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// Disconnect closes the transport if open, cancels any scheduled retry and
// resets the retry budget. It never triggers reconnection.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.stopRetryLocked()
	m.resetBackoffLocked()
	m.gen++
	m.joined = false

	conn := m.conn
	m.conn = nil
	if conn != nil {
		m.setStateLocked(models.Closing, nil)
	}
	if m.state != models.Disconnected {
		m.setStateLocked(models.Disconnected, nil)
	}
	m.unlockAndNotify()

	if conn != nil {
		m.writeMu.Lock()
		err := conn.Close()
		m.writeMu.Unlock()
		if err != nil {
			m.log.Debug().Err(err).Msg("close transport")
		}
	}
	m.log.Info().Msg("disconnected")
}

// Send encodes an envelope and writes it to the transport. It returns true
// only when the channel is Open and the write succeeded. Nothing is queued
// for later delivery.
func (m *Manager) Send(t models.MessageType, data any) bool {
	m.mu.Lock()
	conn := m.conn
	open := m.state == models.Open
	m.mu.Unlock()
	if !open || conn == nil {
		return false
	}

	raw, err := models.EncodeEnvelope(t, data, m.now())
	if err != nil {
		m.log.Error().Err(err).Str("type", string(t)).Msg("encode outbound envelope")
		return false
	}

	m.writeMu.Lock()
	err = conn.WriteMessage(raw)
	m.writeMu.Unlock()
	if err != nil {
		m.log.Warn().Err(err).Str("type", string(t)).Msg("write outbound envelope")
		return false
	}

	return true
}

// dial performs one attempt. manual selects the failure policy: a manual
// attempt falls back to Disconnected, a scheduled retry continues the
// backoff.
func (m *Manager) dial(manual bool) error {
	m.mu.Lock()
	if m.state == models.Open {
		m.mu.Unlock()
		return nil
	}
	gen := m.gen
	m.setStateLocked(models.Connecting, nil)
	m.unlockAndNotify()

	ctx := context.Background()
	if m.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.DialTimeout)
		defer cancel()
	}

	conn, err := m.dialer.Dial(ctx, m.cfg.URL)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return ErrDisconnected
	}

	if m.joined {
		manual = true
		m.joined = false
		m.resetBackoffLocked()
	}

	if err != nil {
		cerr := &ConnectionError{URL: m.cfg.URL, Err: err}
		if manual {
			m.log.Warn().Err(err).Str("url", m.cfg.URL).Msg("connect failed")
			m.setStateLocked(models.Disconnected, cerr)
		} else {
			m.log.Warn().Err(err).Int("attempt", m.attempt).Msg("reconnect attempt failed")
			m.scheduleRetryLocked(cerr)
		}
		m.unlockAndNotify()
		return cerr
	}

	m.gen++
	gen = m.gen
	m.conn = conn
	m.attempt = 0
	m.resetBackoffLocked()
	m.setStateLocked(models.Open, nil)
	m.unlockAndNotify()

	m.log.Info().Str("url", m.cfg.URL).Msg("connected")
	go m.readLoop(conn, gen)

	return nil
}

func (m *Manager) readLoop(conn Conn, gen uint64) {
	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			m.handleDrop(gen, err)
			return
		}

		m.mu.Lock()
		h := m.onMessage
		m.mu.Unlock()
		if h != nil {
			h(raw)
		}
	}
}

func (m *Manager) handleDrop(gen uint64, cause error) {
	m.mu.Lock()
	if gen != m.gen || m.conn == nil {
		m.mu.Unlock()
		return
	}

	conn := m.conn
	m.conn = nil
	m.log.Warn().Err(cause).Msg("connection dropped")
	m.scheduleRetryLocked(&ConnectionError{URL: m.cfg.URL, Err: cause})
	m.unlockAndNotify()

	_ = conn.Close()
}

// scheduleRetryLocked arms the single retry timer, or gives up when the
// backoff is exhausted.
func (m *Manager) scheduleRetryLocked(cause error) {
	if m.backoff == nil {
		m.resetBackoffLocked()
	}

	delay, stop := m.backoff.Next()
	if stop {
		m.log.Error().Int("attempt", m.attempt).Msg("permanently disconnected")
		m.setStateLocked(models.GivenUp, &givenUpError{attempts: m.attempt, last: cause})
		return
	}

	m.attempt++
	m.setStateLocked(models.Reconnecting, cause)
	m.log.Info().Int("attempt", m.attempt).Dur("delay", delay).Msg("reconnect scheduled")

	gen := m.gen
	m.retryTimer = m.sched.AfterFunc(delay, func() { m.retry(gen) })
}

func (m *Manager) retry(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.state != models.Reconnecting {
		m.mu.Unlock()
		return
	}
	m.retryTimer = nil
	m.mu.Unlock()

	_, _, _ = m.flight.Do(connectKey, func() (any, error) {
		return nil, m.dial(false)
	})
}

func (m *Manager) stopRetryLocked() {
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
}

func (m *Manager) resetBackoffLocked() {
	m.attempt = 0
	m.backoff = newBackoff(m.cfg.BaseDelay, m.cfg.MaxAttempts)
}

func (m *Manager) setStateLocked(s models.ConnectionState, err error) {
	if m.state == s && err == nil {
		return
	}
	m.state = s
	m.pending = append(m.pending, stateEvent{state: s, err: err})
}

// unlockAndNotify releases mu and delivers queued state events outside the
// lock so handlers may call back into the manager.
func (m *Manager) unlockAndNotify() {
	events := m.pending
	m.pending = nil
	h := m.onState
	m.mu.Unlock()

	if h == nil {
		return
	}
	for _, ev := range events {
		h(ev.state, ev.err)
	}
}
