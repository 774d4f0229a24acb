package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Out: &buf})

	l.Component("auth").Info().Str("username", "admin").Msg("login")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "auth", line["component"])
	assert.Equal(t, "admin", line["username"])
	assert.Equal(t, "login", line["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}
