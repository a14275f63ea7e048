// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package speech

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// buildSSML wraps the escaped text in a prosody element. The neural engine
// ignores pitch, so it is only emitted for the standard engine.
func buildSSML(u Utterance, engine pollytypes.Engine) string {
	var text bytes.Buffer
	_ = xml.EscapeText(&text, []byte(u.Text))

	attrs := ""
	if u.Rate > 0 && u.Rate != 1 {
		attrs += fmt.Sprintf(` rate="%d%%"`, int(math.Round(u.Rate*100)))
	}
	if engine != pollytypes.EngineNeural && u.Pitch > 0 && u.Pitch != 1 {
		attrs += fmt.Sprintf(` pitch="%+d%%"`, int(math.Round((u.Pitch-1)*100)))
	}

	if attrs == "" {
		return "<speak>" + text.String() + "</speak>"
	}
	return "<speak><prosody" + attrs + ">" + text.String() + "</prosody></speak>"
}
