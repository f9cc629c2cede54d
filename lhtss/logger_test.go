package lhtss

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		require.False(t, l.Enabled(context.Background(), level))
	}
}

func TestSolveLogsIterations(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	d, cw := reference_setup(t)
	_, err := Solve(d, cw, srgb_target(0, 33, 133), DefaultConfig())
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "newton step")
	require.Contains(t, out, "residual=")

	buf.Reset()
	_, err = Solve(d, cw, [3]float64{}, DefaultConfig())
	require.Error(t, err)
	require.True(t, strings.Contains(buf.String(), "unreachable target"))

	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
