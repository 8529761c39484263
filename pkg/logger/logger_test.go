package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"ruido":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "gestion-stock", Out: &buf})

	log.Debug().Msg("no debe salir")
	log.Component("analytics").WithCompany("c-1").Warn().Str("period", "week").Msg("sin datos")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "gestion-stock", entry["service"])
	assert.Equal(t, "analytics", entry["component"])
	assert.Equal(t, "c-1", entry["company_id"])
	assert.Equal(t, "week", entry["period"])
	assert.Equal(t, "sin datos", entry["message"])
}

func TestWithCompany_VacioDevuelveMismoLogger(t *testing.T) {
	log := Nop()
	assert.Same(t, log, log.WithCompany(""))
}
