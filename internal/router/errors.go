// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "errors"

var (
	ErrNilHandler      = errors.New("nil handler")
	ErrSchemaViolation = errors.New("payload violates schema")
)
