// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package channel owns the single logical connection to the analysis
// backend.
//
// [Manager] establishes the connection, reconnects with exponential backoff
// after an unexpected drop and exposes a best-effort [Manager.Send]. It is the
// only component that touches the transport handle. The transport itself is
// abstracted behind [Dialer] and [Conn]; [WSDialer] is the gorilla/websocket
// implementation used in production.
//
// State machine:
//
//	Disconnected -> Connecting -> Open
//	Open --drop--> Reconnecting --retry ok--> Open
//	Reconnecting --retry failed--> Reconnecting | GivenUp
//
// GivenUp is terminal until Connect is called again. Disconnect always ends in
// Disconnected and cancels any scheduled retry.
package channel
