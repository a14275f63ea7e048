// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-form-coach/internal/adapter"
	"github.com/MKhiriev/go-form-coach/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractDetail(err)

	switch {
	case errors.Is(err, adapter.ErrEmptyUserID):
		return ErrNoUserID

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgUserNotFound || msg == app.MsgProfileNotFound {
			return ErrUserNotFound
		}

	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrUpdateRejected):
		return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)

	case errors.Is(err, adapter.ErrServiceUnavailable), errors.Is(err, adapter.ErrInternalServerError):
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return err
}

// extractDetail extracts the body from a message of the form "not found: <body>"
// and unwraps a {"detail": "..."} error document when present.
func extractDetail(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		msg = msg[idx+2:]
	}

	var doc struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal([]byte(msg), &doc) == nil && doc.Detail != "" {
		return doc.Detail
	}
	return msg
}
