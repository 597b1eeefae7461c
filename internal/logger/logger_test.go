package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Setenv(EnvLevel, "")

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		l, err := Setup(&bytes.Buffer{}, tt.level, FormatText)
		require.NoError(t, err)
		assert.Equal(t, tt.want, l.Level, tt.level)
	}

	_, err := Setup(&bytes.Buffer{}, "loud", FormatText)
	require.Error(t, err)

	_, err = Setup(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestSetup_EnvLevel(t *testing.T) {
	t.Setenv(EnvLevel, "debug")

	l, err := Setup(&bytes.Buffer{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.Level)

	l, err = Setup(&bytes.Buffer{}, "error", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, l.Level, "explicit level wins")
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup(&buf, "info", FormatJSON)
	require.NoError(t, err)

	l.WithField("type", "entity.Order").Info("type generated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "type generated", line["msg"])
	assert.Equal(t, "entity.Order", line["type"])
	assert.Equal(t, "info", line["level"])
}
