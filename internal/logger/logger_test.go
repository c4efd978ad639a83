package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Setup(LogConfig{Level: "debug", Format: "json", Output: path}))
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := WithComponent("render")
	l.Info().Str("number", "QT-0001").Msg("rendered")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "render", entry["component"])
	assert.Equal(t, "QT-0001", entry["number"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup(LogConfig{Level: "loud"}))
}

func TestSetupEmptyLevelDefaultsToInfo(t *testing.T) {
	require.NoError(t, Setup(LogConfig{Format: "json", Output: "stderr"}))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
