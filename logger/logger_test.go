package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Out: &buf})

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Str("component", "test").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "caller")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud", Out: &buf})

	log.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Pretty: true, Out: &buf})

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}
