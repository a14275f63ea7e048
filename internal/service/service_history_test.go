// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/mock"
	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHistorySvc(t *testing.T) (HistoryService, *mock.MockCoachAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockCoachAdapter(ctrl)
	return NewHistoryService(mockAdapter, logger.Nop()), mockAdapter
}

func TestHistoryService_Refresh_StoresLatest(t *testing.T) {
	svc, mockAdapter := newTestHistorySvc(t)
	ctx := context.Background()

	_, ok := svc.Latest()
	assert.False(t, ok)

	want := models.SessionHistory{UserID: "u-1", TotalSessions: 3, TotalReps: 72}
	mockAdapter.EXPECT().GetHistory(ctx, "u-1", DefaultHistoryLimit).Return(want, nil)

	got, err := svc.Refresh(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, want, latest)
}

func TestHistoryService_Refresh_ErrorKeepsPrevious(t *testing.T) {
	svc, mockAdapter := newTestHistorySvc(t)
	ctx := context.Background()

	first := models.SessionHistory{UserID: "u-1", TotalSessions: 1}
	gomock.InOrder(
		mockAdapter.EXPECT().GetHistory(ctx, "u-1", gomock.Any()).Return(first, nil),
		mockAdapter.EXPECT().GetHistory(ctx, "u-1", gomock.Any()).
			Return(models.SessionHistory{}, fmt.Errorf("%w: ", adapter.ErrServiceUnavailable)),
	)

	_, err := svc.Refresh(ctx, "u-1")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, "u-1")
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, first, latest)
}

func TestHistoryService_Profile_NotFound(t *testing.T) {
	svc, mockAdapter := newTestHistorySvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().GetProfile(ctx, "ghost").
		Return(models.Profile{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, `{"detail":"User not found"}`))

	_, err := svc.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHistoryService_Profile_Success(t *testing.T) {
	svc, mockAdapter := newTestHistorySvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().GetProfile(ctx, "u-1").Return(models.Profile{ID: "u-1", Name: "Alice"}, nil)

	got, err := svc.Profile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}
