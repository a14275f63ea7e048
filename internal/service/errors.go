// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNoUserID           = errors.New("no user ID provided")
)
