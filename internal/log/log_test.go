package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestRawLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	}}

	r.Log(true, []byte{0b00_100000, 0b10_000001})
	r.Log(false, []byte{0x05})
	r.Log(true, nil)

	assert.Equal(t,
		"2024/03/01 12:30:00.000 RX 0x20 (X, 32)\n"+
			"2024/03/01 12:30:00.000 RX 0x81 (SW, 1)\n"+
			"2024/03/01 12:30:00.000 TX 0x05 (X, 5)\n",
		buf.String())
}

func TestRawLoggerNilWriter(t *testing.T) {
	assert.NotPanics(t, func() { NewRaw(nil).Log(true, []byte{1, 2, 3}) })
}

func TestSetupSplitsStdoutAndStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, raw, closers, err := Setup(Config{Level: "debug"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("hello")
	logger.Error("broken")
	raw.Log(true, []byte{0})

	assert.Contains(t, stdout.String(), "msg=hello")
	assert.NotContains(t, stdout.String(), "broken")
	assert.Contains(t, stderr.String(), "msg=broken")
	assert.NotContains(t, stdout.String(), " RX ", "raw dump only at trace level")
}

func TestSetupTraceDumpsRaw(t *testing.T) {
	var stdout, stderr bytes.Buffer
	_, raw, _, err := Setup(Config{Level: "trace"}, &stdout, &stderr)
	require.NoError(t, err)
	raw.Log(true, []byte{0xff})
	assert.Contains(t, stdout.String(), "RX 0xff (BT, 63)")
}

func TestSetupFiles(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "serialpad.log")
	rawFile := filepath.Join(dir, "raw.log")

	var stdout, stderr bytes.Buffer
	logger, raw, closers, err := Setup(Config{Level: "info", File: logFile, RawFile: rawFile}, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, closers, 2)

	logger.Info("started", "port", "/dev/ttyUSB0")
	raw.Log(true, []byte{0x40})
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=started")
	assert.Contains(t, stderr.String(), "msg=started")
	assert.Empty(t, stdout.String())

	b, err = os.ReadFile(rawFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "RX 0x40 (Y, 0)")
}
