// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/config"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/utils"
	"github.com/MKhiriev/go-form-coach/models"
)

const (
	retryCount = 1
	retryWait  = 200 * time.Millisecond
	userAgent  = "go-form-coach"
)

type httpCoachAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPCoachAdapter constructs an HTTP/REST implementation of
// [CoachAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPCoachAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (CoachAdapter, error) {
	client := utils.NewHTTPClient(
		utils.WithRetry(retryCount, retryWait),
		utils.WithUserAgent(userAgent),
	)
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpCoachAdapter{client: client, logger: logger.Component("adapter")}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [CoachAdapter]. It GETs the backend root.
func (h *httpCoachAdapter) Health(ctx context.Context) (models.HealthCheck, error) {
	var health models.HealthCheck

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/")
	if err != nil {
		return models.HealthCheck{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthCheck{}, err
	}

	return health, nil
}

// GetProfile implements [CoachAdapter]. It GETs /profile/{id}.
func (h *httpCoachAdapter) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, ErrEmptyUserID
	}

	var profile models.Profile
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", userID).
		SetResult(&profile).
		Get("/profile/{id}")
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// UpdateProfile implements [CoachAdapter]. It PUTs the partial update to
// /profile/{id} and checks the success flag of the acknowledgement.
func (h *httpCoachAdapter) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	var ack models.APIResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", userID).
		SetBody(update).
		SetResult(&ack).
		Put("/profile/{id}")
	if err != nil {
		return fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("%w: %s", ErrUpdateRejected, ack.Message)
	}

	return nil
}

// GetHistory implements [CoachAdapter]. It GETs /history/{user_id}?limit=N.
func (h *httpCoachAdapter) GetHistory(ctx context.Context, userID string, limit int) (models.SessionHistory, error) {
	if userID == "" {
		return models.SessionHistory{}, ErrEmptyUserID
	}

	req := h.client.R().
		SetContext(ctx).
		SetPathParam("user_id", userID)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	var history models.SessionHistory
	resp, err := req.SetResult(&history).Get("/history/{user_id}")
	if err != nil {
		return models.SessionHistory{}, fmt.Errorf("get history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionHistory{}, err
	}

	h.logger.Debug().
		Str("user_id", userID).
		Int("sessions", len(history.Sessions)).
		Msg("history fetched")

	return history, nil
}
