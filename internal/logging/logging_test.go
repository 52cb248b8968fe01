package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "json", "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("report generated", "rows", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "report generated", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.InDelta(t, 3, rec["rows"], 0)
	assert.NotContains(t, rec, "source")
}

func TestNew_TextLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "warn")
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("data integrity gap", "kind", "orphan")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "kind=orphan")
}

func TestNew_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "text", "DEBUG")
	require.NoError(t, err)

	logger.Debug("fetch")
	assert.Contains(t, buf.String(), "source=")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", "info")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "json", "loud")
	assert.Error(t, err)
}
