package builder

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetupLogger(t *testing.T) {
	logger, err := setupLogger("debug")
	if err != nil {
		t.Fatalf("setupLogger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level not enabled")
	}
}

func TestSetupLoggerLevelFilter(t *testing.T) {
	logger, err := setupLogger("warn")
	if err != nil {
		t.Fatalf("setupLogger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level enabled at warn")
	}
}

func TestSetupLoggerInvalidLevel(t *testing.T) {
	if _, err := setupLogger("shouty"); err == nil {
		t.Error("no error for an invalid level")
	}
}
