package obs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production", slog.LevelInfo).Info("booking created", "bookingId", "b1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking created", line["msg"])
	assert.Equal(t, "b1", line["bookingId"])
}

func TestNewLogger_DevIsText(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "dev", slog.LevelInfo).Info("booking created", "bookingId", "b1")

	assert.Contains(t, buf.String(), "booking created")
	assert.False(t, json.Valid(buf.Bytes()))
}
