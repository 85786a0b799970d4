package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", "json", &buf)
	defer Setup("info", "json", nil)

	Info("analysis_done", map[string]any{"handle": "@x", "trust": 72})
	Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var e map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &e))
	assert.Equal(t, "info", e["level"])
	assert.Equal(t, "analysis_done", e["msg"])
	assert.Equal(t, "@x", e["handle"])
	assert.Equal(t, float64(72), e["trust"])
}

func TestSetupLevelAndText(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", "text", &buf)
	defer Setup("info", "json", nil)

	Debug("visible", map[string]any{"k": "v"})
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	Setup("nonsense", "json", &buf)
	Debug("dropped", nil)
	Warn("kept", nil)
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
