// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
)

// Handler receives a decoded envelope.
type Handler = func(models.Envelope)

type subscription struct {
	id uint64
	h  Handler
}

// Router is a publish/subscribe registry keyed by message type plus the
// [models.Wildcard] category.
type Router struct {
	validator *Validator
	log       *logger.Logger
	now       func() time.Time

	mu     sync.RWMutex
	nextID uint64
	subs   map[models.MessageType][]subscription
}

// New returns an empty Router. A nil validator disables schema checks.
func New(validator *Validator, log *logger.Logger) *Router {
	return &Router{
		validator: validator,
		log:       log.Component("router"),
		now:       time.Now,
		subs:      make(map[models.MessageType][]subscription),
	}
}

// On registers h for envelopes of type t (or every envelope when t is
// [models.Wildcard]). Handlers of one type run in registration order. The
// returned function removes exactly this registration; calling it again is a
// no-op.
func (r *Router) On(t models.MessageType, h Handler) func() {
	if h == nil {
		r.log.Warn().Err(ErrNilHandler).Str("type", string(t)).Msg("subscribe ignored")
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs[t] = append(r.subs[t], subscription{id: id, h: h})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(t, id) })
	}
}

// Count returns the number of handlers registered for t.
func (r *Router) Count(t models.MessageType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[t])
}

// Dispatch decodes raw and publishes it. Malformed or invalid messages are
// logged and dropped. It reports whether the message was delivered.
func (r *Router) Dispatch(raw []byte) bool {
	env, err := models.DecodeEnvelope(raw)
	if err != nil {
		r.log.Warn().Err(err).Int("size", len(raw)).Msg("dropping malformed message")
		return false
	}

	if r.validator != nil {
		if err := r.validator.Validate(env); err != nil {
			r.log.Warn().Err(err).Str("type", string(env.Type)).Msg("dropping invalid message")
			return false
		}
	}

	env.ReceivedAt = r.now()
	r.Publish(env)
	return true
}

// Publish delivers env to the type handlers, then to the wildcard handlers.
// Handlers registered or removed during delivery take effect from the next
// envelope. A panicking handler is logged and does not stop delivery.
func (r *Router) Publish(env models.Envelope) {
	r.mu.RLock()
	typed := r.subs[env.Type]
	var wildcard []subscription
	if env.Type != models.Wildcard {
		wildcard = r.subs[models.Wildcard]
	}
	r.mu.RUnlock()

	// remove always copies, so the snapshots stay valid without the lock
	for _, s := range typed {
		r.call(s.h, env)
	}
	for _, s := range wildcard {
		r.call(s.h, env)
	}
}

func (r *Router) call(h Handler, env models.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Str("type", string(env.Type)).Msg("handler panicked")
		}
	}()
	h(env)
}

func (r *Router) remove(t models.MessageType, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[t]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(r.subs, t)
		} else {
			r.subs[t] = next
		}
		return
	}
}
