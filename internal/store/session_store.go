// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/models"
)

// FatigueClearAfter is how long a fatigue warning stays raised.
const FatigueClearAfter = 5000 * time.Millisecond

// SessionStore is the exercise/session store. It owns the fatigue timer:
// every fatigue_warning restarts it and no other event touches it.
type SessionStore struct {
	*Store[models.SessionState]

	sched clock.Scheduler

	mu      sync.Mutex
	fatigue clock.Timer
}

func NewSessionStore(sched clock.Scheduler) *SessionStore {
	return &SessionStore{
		Store: New(models.SessionState{}, ReduceSession),
		sched: sched,
	}
}

// Apply reduces env and, for fatigue_warning, restarts the self-clear timer.
func (s *SessionStore) Apply(env models.Envelope) models.SessionState {
	state := s.Store.Apply(env)
	if env.Type == models.MessageFatigueWarning {
		s.restartFatigueTimer()
	}
	return state
}

// Reset restores the neutral state and stops the fatigue timer.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	if s.fatigue != nil {
		s.fatigue.Stop()
		s.fatigue = nil
	}
	s.mu.Unlock()

	s.Store.Reset()
}

func (s *SessionStore) restartFatigueTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fatigue != nil {
		s.fatigue.Stop()
	}

	var t clock.Timer
	t = s.sched.AfterFunc(FatigueClearAfter, func() {
		s.mu.Lock()
		current := s.fatigue == t
		if current {
			s.fatigue = nil
		}
		s.mu.Unlock()

		if current {
			s.Update(ClearFatigue)
		}
	})
	s.fatigue = t
}
