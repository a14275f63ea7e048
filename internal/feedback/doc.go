// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package feedback turns classification labels and posture feedback into a
// status tier, a correction text and a decision whether to speak it.
//
// [Classify] and [Correction] are pure. [Policy] owns the timers: the
// "already spoken" flag that throttles repeated corrections and the hide
// timer of the visible banner.
package feedback
