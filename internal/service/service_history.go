// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
	"golang.org/x/sync/singleflight"
)

// DefaultHistoryLimit is the number of sessions requested per refresh.
const DefaultHistoryLimit = 20

type historyService struct {
	coachAdapter adapter.CoachAdapter
	limit        int
	logger       *logger.Logger

	flight singleflight.Group

	mu      sync.RWMutex
	latest  models.SessionHistory
	fetched bool
}

// NewHistoryService returns a [HistoryService] backed by coachAdapter.
func NewHistoryService(coachAdapter adapter.CoachAdapter, logger *logger.Logger) HistoryService {
	return &historyService{
		coachAdapter: coachAdapter,
		limit:        DefaultHistoryLimit,
		logger:       logger.Component("history"),
	}
}

func (s *historyService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	profile, err := s.coachAdapter.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, mapAdapterError(err)
	}
	return profile, nil
}

// Refresh implements [HistoryService]. Concurrent refreshes of the same user
// share one request.
func (s *historyService) Refresh(ctx context.Context, userID string) (models.SessionHistory, error) {
	v, err, _ := s.flight.Do(userID, func() (any, error) {
		return s.coachAdapter.GetHistory(ctx, userID, s.limit)
	})
	if err != nil {
		err = mapAdapterError(err)
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("history refresh failed")
		return models.SessionHistory{}, err
	}

	history := v.(models.SessionHistory)

	s.mu.Lock()
	s.latest = history
	s.fetched = true
	s.mu.Unlock()

	return history, nil
}

func (s *historyService) Latest() (models.SessionHistory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.fetched
}
