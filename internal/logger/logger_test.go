package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsFromEnv(t *testing.T) {
	tests := []struct {
		level, format string
		enabled       bool
		want          slog.Level
		json          bool
	}{
		{"", "", false, 0, false},
		{"off", "", false, 0, false},
		{"debug", "", true, slog.LevelDebug, false},
		{"INFO", "json", true, slog.LevelInfo, true},
		{"warn", "", true, slog.LevelWarn, false},
		{"error", "text", true, slog.LevelError, false},
		{"1", "", true, slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			opts, ok := optionsFromEnv(tt.level, tt.format)
			require.Equal(t, tt.enabled, ok)
			if !ok {
				return
			}
			require.True(t, opts.Enabled)
			require.Equal(t, tt.want, opts.Level)
			require.Equal(t, tt.json, opts.JSON)
		})
	}
}

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: true, Output: &buf, Level: slog.LevelDebug})
	l.Debug("pool allocate", "blocks", 3)
	require.Contains(t, buf.String(), "pool allocate")
	require.Contains(t, buf.String(), "blocks=3")

	buf.Reset()
	l = New(Options{Enabled: true, Output: &buf, JSON: true})
	l.Debug("hidden")
	l.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestInit_Disabled(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	l := Init(Options{})
	require.Same(t, l, L)
	require.False(t, L.Enabled(t.Context(), slog.LevelError))
}
