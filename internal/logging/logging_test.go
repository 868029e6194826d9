package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qa-insight/internal/logging"
)

func TestSetup_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, cleanup, err := logging.Setup(logging.Config{Level: "debug", File: path, Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("fetching schema")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"fetching schema"`) {
		t.Errorf("expected json entry, got %s", data)
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if _, _, err := logging.Setup(logging.Config{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}
