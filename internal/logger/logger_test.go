package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Options{
		Dir:      tmpDir,
		Filename: "release.log",
	}
	log := New("release", cfg)
	log.Info("release-log-test")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "release-log-test") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Options{
		Dir:      tmpDir,
		Filename: "debug.log",
	}
	log := New("debug", cfg)
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestNewFallsBackToDefaultFilename(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir})
	log.Info("default-filename-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, defaultLogFilename)); err != nil {
		t.Fatalf("expected default log file to exist: %v", err)
	}
}
