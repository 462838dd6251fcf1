package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newTo(&buf, "prod", "")
	log.Debug("hidden")
	log.Info("shown", "k", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "cat-tracker", line["service"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := newTo(&buf, "dev", "warn")
	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestBadLevelKeepsDefault(t *testing.T) {
	var buf bytes.Buffer
	newTo(&buf, "dev", "chatty").Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
