// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package router fans inbound envelopes out to subscribers keyed by message
// type.
//
// [Router.Dispatch] decodes a raw transport message, validates its payload
// against the JSON schema registered for its type and delivers it to every
// handler registered for that type, followed by every wildcard handler.
// Messages that fail to decode or validate are logged and dropped; they never
// reach a handler.
package router
