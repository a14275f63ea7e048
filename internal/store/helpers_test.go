// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/require"
)

var testReceivedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// envelope декодирует сообщение так же, как это делает роутер
func envelope(t *testing.T, typ models.MessageType, data string) models.Envelope {
	t.Helper()
	raw := `{"type":"` + string(typ) + `"`
	if data != "" {
		raw += `,"data":` + data
	}
	raw += `}`

	env, err := models.DecodeEnvelope([]byte(raw))
	require.NoError(t, err)
	env.ReceivedAt = testReceivedAt
	return env
}
