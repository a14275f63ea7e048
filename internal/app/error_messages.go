// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-form-coach client.
//
// The Msg* constants are the human-readable "detail" strings the backend REST
// API writes into error responses. The service layer matches them to turn
// transport errors into business errors.
package app

const (
	// MsgUserNotFound is returned by the profile and history endpoints when
	// the requested user does not exist.
	MsgUserNotFound = "User not found"

	// MsgProfileNotFound is the legacy wording of MsgUserNotFound.
	MsgProfileNotFound = "Profile not found"
)
