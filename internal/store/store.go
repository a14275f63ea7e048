// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"

	"github.com/MKhiriev/go-form-coach/models"
)

// Reducer folds one envelope into the state. It must not mutate its input.
type Reducer[S any] func(state S, env models.Envelope) S

// Listener is notified with the new state after every change.
type Listener[S any] func(state S)

// Option configures a [Store].
type Option[S any] func(*Store[S])

// WithEqual makes the store skip listener notification when the reducer
// returns a state equal to the previous one.
func WithEqual[S any](equal func(a, b S) bool) Option[S] {
	return func(s *Store[S]) { s.equal = equal }
}

// Store is a concurrency-safe holder for a reducer's state.
type Store[S any] struct {
	reduce  Reducer[S]
	initial S
	equal   func(a, b S) bool

	mu        sync.RWMutex
	state     S
	listeners []Listener[S]
}

// New returns a Store starting at initial.
func New[S any](initial S, reduce Reducer[S], opts ...Option[S]) *Store[S] {
	s := &Store[S]{reduce: reduce, initial: initial, state: initial}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply reduces env into the state and notifies listeners.
func (s *Store[S]) Apply(env models.Envelope) S {
	return s.Update(func(state S) S { return s.reduce(state, env) })
}

// Update replaces the state with fn(state) and notifies listeners. With
// [WithEqual], an unchanged state notifies nobody.
func (s *Store[S]) Update(fn func(S) S) S {
	s.mu.Lock()
	prev := s.state
	s.state = fn(prev)
	state := s.state
	listeners := s.listeners
	s.mu.Unlock()

	if s.equal != nil && s.equal(prev, state) {
		return state
	}

	for _, l := range listeners {
		l(state)
	}
	return state
}

// Reset restores the initial state and notifies listeners.
func (s *Store[S]) Reset() {
	s.Update(func(S) S { return s.initial })
}

// Subscribe registers l. Listeners run after the state lock is released, in
// registration order.
func (s *Store[S]) Subscribe(l Listener[S]) {
	s.mu.Lock()
	s.listeners = append(s.listeners[:len(s.listeners):len(s.listeners)], l)
	s.mu.Unlock()
}
