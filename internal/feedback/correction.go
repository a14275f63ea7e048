// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package feedback

import (
	"strings"
	"unicode"

	"github.com/MKhiriev/go-form-coach/models"
)

// PerfectMessage is shown and never spoken for a correct classification.
const PerfectMessage = "Great form, keep it up!"

// correctMarkers are label words that indicate correct execution. Matching is
// per word so that "incorrect" is not taken for "correct".
var correctMarkers = map[string]struct{}{
	"correct": {},
	"good":    {},
	"perfect": {},
	"proper":  {},
}

// corrections is searched in order; the first keyword contained in the
// lowercased label wins.
var corrections = []struct {
	keywords []string
	text     string
}{
	{[]string{"knee", "valgus", "caving"}, "Keep your knees aligned over your toes"},
	{[]string{"heel"}, "Keep your heels on the ground"},
	{[]string{"back", "spine", "round"}, "Keep your back straight"},
	{[]string{"hip", "sag"}, "Keep your hips in line with your body"},
	{[]string{"depth", "shallow", "high"}, "Go lower, reach full depth"},
	{[]string{"elbow", "flare"}, "Keep your elbows close to your body"},
	{[]string{"lean", "forward", "chest"}, "Keep your chest up"},
	{[]string{"head", "neck"}, "Keep your head in a neutral position"},
	{[]string{"arm", "lockout"}, "Extend your arms fully"},
	{[]string{"fast", "speed", "rush"}, "Slow down and control the movement"},
}

// Classify maps a classification label to a status tier: perfect when the
// label marks correct execution, neutral when there is no label and warning
// otherwise.
func Classify(label string) models.FeedbackStatus {
	words := labelWords(label)
	if len(words) == 0 {
		return models.StatusNeutral
	}
	for _, w := range words {
		if _, ok := correctMarkers[w]; ok {
			return models.StatusPerfect
		}
	}
	return models.StatusWarning
}

// Correction returns the text for label. It is total: a label without a
// known keyword is returned with its separators replaced by spaces.
func Correction(label string) string {
	if Classify(label) == models.StatusPerfect {
		return PerfectMessage
	}

	lower := strings.ToLower(label)
	for _, c := range corrections {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.text
			}
		}
	}

	return Humanize(label)
}

// Humanize replaces '_' and '-' separators with spaces and collapses runs of
// whitespace.
func Humanize(label string) string {
	return strings.Join(strings.FieldsFunc(label, isSeparator), " ")
}

func labelWords(label string) []string {
	return strings.FieldsFunc(strings.ToLower(label), isSeparator)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
