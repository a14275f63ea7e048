// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the coaching client runtime.
//
// It wires the realtime channel, the event router, the derived state stores,
// the feedback policy, speech output, telemetry and the REST collaborator
// into a single process lifecycle. Every component is constructed by
// [NewApp]; there are no package-level singletons.
package client
