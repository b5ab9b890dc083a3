package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: " error ", want: slog.LevelError},
		{input: "trace", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer

	logger, closeFn, err := New(&buf, "warn", "")
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Info("hidden")
	logger.Warn("visible", slog.String("user_id", "u-1"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "user_id=u-1")
}

func TestNew_LogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "tabata.log")

	logger, closeFn, err := New(&buf, "info", path)
	require.NoError(t, err)

	logger.Info("workout started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workout started")
	assert.Contains(t, buf.String(), "workout started")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, "loud", "")
	assert.Error(t, err)

	_, _, err = New(&bytes.Buffer{}, "info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
