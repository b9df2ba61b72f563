package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbazaar/bazaar/config"
)

func TestSetup_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("op", "list_agents").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "list_agents", entry["op"])
	assert.Equal(t, "shown", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := Setup(config.LogConfig{Level: "info", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazaar.log")
	var fallback bytes.Buffer

	logger, closer, err := Setup(config.LogConfig{Level: "debug", Format: "json", File: path}, &fallback)
	require.NoError(t, err)
	logger.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Zero(t, fallback.Len())
}

func TestSetup_BadFile(t *testing.T) {
	_, _, err := Setup(config.LogConfig{File: filepath.Join(t.TempDir(), "missing", "x.log")}, nil)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
