package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]zapcore.Level{
		"debug":    zapcore.DebugLevel,
		" WARN ":   zapcore.WarnLevel,
		"warning":  zapcore.WarnLevel,
		"error":    zapcore.ErrorLevel,
		"info":     zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
		"verbose?": zapcore.InfoLevel,
	}
	for in, want := range testCases {
		if got := levelFromString(in); got != want {
			t.Errorf("levelFromString(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNew_BuildsBothModes(t *testing.T) {
	t.Parallel()

	for _, dev := range []bool{true, false} {
		logger, err := New("debug", dev)
		if err != nil {
			t.Fatalf("development=%v: unexpected error: %v", dev, err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("development=%v: expected debug level to be enabled", dev)
		}
	}
}
