package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"DEBUG level", DEBUG, "DEBUG"},
		{"INFO level", INFO, "INFO"},
		{"WARN level", WARN, "WARN"},
		{"ERROR level", ERROR, "ERROR"},
		{"Unknown level", LogLevel(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  LogLevel
		wantError bool
	}{
		{"Parse DEBUG", "DEBUG", DEBUG, false},
		{"Parse debug lowercase", "debug", DEBUG, false},
		{"Parse INFO", "INFO", INFO, false},
		{"Parse WARN", "WARN", WARN, false},
		{"Parse WARNING", "WARNING", WARN, false},
		{"Parse ERROR", "ERROR", ERROR, false},
		{"Parse padded", "  info ", INFO, false},
		{"Parse invalid", "INVALID", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("ParseLevel() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && result != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New()

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.level != ERROR {
		t.Errorf("Default level = %v, want %v", logger.level, ERROR)
	}
	if logger.fields == nil {
		t.Error("Fields map not initialized")
	}
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  DEBUG,
		Output: &buf,
	}

	logger := NewWithConfig(config)

	if logger.level != DEBUG {
		t.Errorf("Level = %v, want %v", logger.level, DEBUG)
	}
}

func TestLogger_WithFields(t *testing.T) {
	logger := New()

	// Test with multiple fields
	newLogger := logger.WithFields("key1", "value1", "key2", 123, "key3", true)

	if newLogger == logger {
		t.Error("WithFields should return new logger instance")
	}

	if len(newLogger.fields) != 3 {
		t.Errorf("Expected 3 fields, got %d", len(newLogger.fields))
	}

	if newLogger.fields["key1"] != "value1" {
		t.Errorf("Field key1 = %v, want 'value1'", newLogger.fields["key1"])
	}

	// Test with odd number of arguments (should handle gracefully)
	oddLogger := logger.WithFields("key1", "value1", "key2")
	if len(oddLogger.fields) != 1 {
		t.Errorf("Expected 1 field with odd args, got %d", len(oddLogger.fields))
	}
}

func TestLogger_WithField(t *testing.T) {
	logger := New()
	newLogger := logger.WithField("schema", "event.proto")

	if newLogger == logger {
		t.Error("WithField should return new logger instance")
	}

	if newLogger.fields["schema"] != "event.proto" {
		t.Errorf("Field schema = %v, want 'event.proto'", newLogger.fields["schema"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  INFO,
		Output: &buf,
	})

	// DEBUG should not be logged when level is INFO
	buf.Reset()
	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("DEBUG message logged when level is INFO")
	}

	buf.Reset()
	logger.Info("info message")
	if buf.Len() == 0 {
		t.Error("INFO message not logged when level is INFO")
	}

	buf.Reset()
	logger.Error("error message")
	if buf.Len() == 0 {
		t.Error("ERROR message not logged when level is INFO")
	}
}

func TestLogger_DefaultIsSilentOnSuccessPath(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  ERROR,
		Output: &buf,
	})

	logger.Debug("compiling schemas")
	logger.Info("wrote descriptor set")
	logger.Warn("slow plugin")

	if buf.Len() > 0 {
		t.Errorf("expected no output below ERROR, got %q", buf.String())
	}
}

func TestLogger_OutputFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  DEBUG,
		Output: &buf,
	})

	logger.WithField("component", "codegen").Info("generated file", "path", "a.pb.go")

	line := buf.String()
	if !strings.Contains(line, "[INFO]") {
		t.Errorf("log line missing level: %q", line)
	}
	if !strings.Contains(line, "generated file") {
		t.Errorf("log line missing message: %q", line)
	}
	if !strings.Contains(line, "component=codegen") {
		t.Errorf("log line missing bound field: %q", line)
	}
	if !strings.Contains(line, "path=a.pb.go") {
		t.Errorf("log line missing call field: %q", line)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"plain string", "abc", "abc"},
		{"string with spaces", "a b", `"a b"`},
		{"error value", bytes.ErrTooLarge, `"bytes.Buffer: too large"`},
		{"duration", 2 * time.Second, "2s"},
		{"time", ts, "2024-05-01T12:00:00Z"},
		{"int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.expected {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger := New()

	logger.SetLevel(DEBUG)
	if logger.GetLevel() != DEBUG {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), DEBUG)
	}
}
