package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] error 4") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestLogHTTPErrorLevelDependsOnStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelError)

	logger.LogHTTPError("POST", "/api/contact", "10.0.0.1", 400, "Invalid email format", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected 4xx to log at warn and be filtered, got %q", buf.String())
	}

	logger.LogHTTPError("POST", "/api/chat", "10.0.0.1", 500, "llm failure", errors.New("upstream 503"))
	if !strings.Contains(buf.String(), "upstream 503") {
		t.Errorf("expected 5xx detail in log, got %q", buf.String())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"stdout only", Config{Level: "info"}, false},
		{"file with rotation", Config{Level: "debug", File: "x.log", MaxSize: 10}, false},
		{"unknown level", Config{Level: "trace"}, true},
		{"file without size", Config{Level: "info", File: "x.log"}, true},
		{"negative backups", Config{Level: "info", File: "x.log", MaxSize: 1, MaxBackups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "api.log")
	logger, err := NewLogger(&Config{Level: "INFO", File: file, MaxSize: 1, NoColor: true})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Close()

	logger.Info("hello %s", "file")
}
