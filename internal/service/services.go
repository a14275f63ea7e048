// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/logger"
)

// Services groups the client services. HistoryService and HistoryJob are nil
// when no REST collaborator is configured.
type Services struct {
	CommandService CommandService
	HistoryService HistoryService
	HistoryJob     HistoryJob
}

func NewServices(sender Sender, coachAdapter adapter.CoachAdapter, logger *logger.Logger) *Services {
	services := &Services{
		CommandService: NewCommandService(sender, logger),
	}
	if coachAdapter != nil {
		historySvc := NewHistoryService(coachAdapter, logger)
		services.HistoryService = historySvc
		services.HistoryJob = NewHistoryJob(historySvc)
	}

	return services
}
