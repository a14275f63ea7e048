// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildUnknown stands in for a build field the linker did not set.
const BuildUnknown = "N/A"

// AppBuildInfo is the version stamp of the coach binary. The fields are set
// with -ldflags at release time and logged once at start-up so a session log
// can be traced back to the build that produced it.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo stamps a build. Empty fields become [BuildUnknown], which
// is what a plain `go build` produces.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return BuildUnknown
		}
		return s
	}
	return AppBuildInfo{
		version: orUnknown(version),
		date:    orUnknown(date),
		commit:  orUnknown(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }

func (a AppBuildInfo) BuildDate() string { return a.date }

// BuildCommit is the git revision the coach was built from.
func (a AppBuildInfo) BuildCommit() string { return a.commit }

// String renders the banner printed before the coach connects.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.version, a.date, a.commit)
}
