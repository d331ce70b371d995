package klog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "text",
		Output: &buf,
	})

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Output: &buf,
	})

	logger.Info("test message")

	if !strings.Contains(buf.String(), `"msg":"test message"`) {
		t.Errorf("expected JSON output to contain msg field, got: %s", buf.String())
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("info message")
	if strings.Contains(buf.String(), "info message") {
		t.Error("info message should be filtered at warn level")
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("warn message should be logged at warn level")
	}
}

func TestRingHandlerMirrorsRecords(t *testing.T) {
	var buf bytes.Buffer
	var mirrored []string
	ring := NewRingHandler(func(level slog.Level, message string) {
		mirrored = append(mirrored, message)
	})

	logger := NewLogger(Config{Level: slog.LevelInfo, Output: &buf, Ring: ring})
	logger.Info("boot complete", "pid", 0)

	if len(mirrored) != 1 {
		t.Fatalf("expected one mirrored record, got %d", len(mirrored))
	}
	if !strings.Contains(mirrored[0], "boot complete") {
		t.Errorf("expected mirrored message to contain 'boot complete', got %q", mirrored[0])
	}
	if !strings.Contains(mirrored[0], "pid=0") {
		t.Errorf("expected mirrored message to contain 'pid=0', got %q", mirrored[0])
	}
	if !strings.Contains(buf.String(), "boot complete") {
		t.Error("expected primary handler to still receive the record")
	}
}

func TestWithPIDAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Output: &buf})
	WithPID(logger, 7).Info("spawned")

	if !strings.Contains(buf.String(), "pid=7") {
		t.Errorf("expected output to contain pid=7, got: %s", buf.String())
	}
}
