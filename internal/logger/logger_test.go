package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LOG_INFO)
	t.Cleanup(func() {
		SetSilentMode(true)
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	log := With("sequencer")
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"sequencer"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	tests := map[string]zerolog.Level{
		LOG_DEBUG: zerolog.DebugLevel,
		LOG_INFO:  zerolog.InfoLevel,
		LOG_WARN:  zerolog.WarnLevel,
		LOG_ERROR: zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for name, want := range tests {
		SetLevel(name)
		assert.Equal(t, want, zerolog.GlobalLevel(), name)
	}
}
