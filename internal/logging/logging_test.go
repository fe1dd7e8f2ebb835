package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "termfolio.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("frame loop started")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "frame loop started") {
		t.Errorf("log missing info line: %s", data)
	}
	if strings.Contains(string(data), "hidden at info level") {
		t.Error("debug line written at info level")
	}
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termfolio.log")

	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("pointer moved")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "pointer moved") {
		t.Error("debug line missing in verbose mode")
	}
}
