package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			log := NewWithWriter(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	// Arrange
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	// Act
	log.Debug().Msg("dropped")
	log.Info().Str("op", "local").Float64("average", 3000).Msg("computed")

	// Assert
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "local", entry["op"])
	assert.InDelta(t, 3000.0, entry["average"], 0)
	assert.Equal(t, "computed", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_Pretty(t *testing.T) {
	t.Parallel()

	log := New("debug", true)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}
