// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the derived client state.
//
// Every store is a pure reducer (state, envelope) -> state wrapped in a
// [Store] that serialises updates and notifies listeners. The reducers never
// touch timers; the fatigue self-clear is owned by [SessionStore].
//
// All state is derived from the inbound envelope sequence and reset to a
// neutral value on session transitions or on [Stores.Reset].
package store
