package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func loadConfig(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	bindFlags()
	t.Cleanup(func() {
		viper.Reset()
		flag := RootCmd.PersistentFlags().Lookup("log-level")
		flag.Value.Set(flag.DefValue)
		flag.Changed = false
		bindFlags()
	})

	path := filepath.Join(t.TempDir(), "qa-insight.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
}

func TestLoggingConfig_FromFile(t *testing.T) {
	loadConfig(t, "logging:\n  level: warn\n  file: from-file.log\n")

	got := LoggingConfig()
	if got.Level != "warn" {
		t.Errorf("expected level warn from file, got %q", got.Level)
	}
	if got.File != "from-file.log" {
		t.Errorf("expected file from-file.log, got %q", got.File)
	}
	if got.Format != "console" {
		t.Errorf("expected default format console, got %q", got.Format)
	}
}

func TestLoggingConfig_FlagOverridesFile(t *testing.T) {
	loadConfig(t, "logging:\n  level: info\n  file: from-file.log\n")

	if err := RootCmd.PersistentFlags().Set("log-level", "debug"); err != nil {
		t.Fatal(err)
	}

	got := LoggingConfig()
	if got.Level != "debug" {
		t.Errorf("expected --log-level to win over the file, got %q", got.Level)
	}
	if got.File != "from-file.log" {
		t.Errorf("expected sibling keys to still come from the file, got %q", got.File)
	}
}

func TestLoggingConfig_EnvOverridesFile(t *testing.T) {
	loadConfig(t, "logging:\n  format: console\n")
	viper.SetEnvPrefix("QAINSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	t.Setenv("QAINSIGHT_LOGGING_FORMAT", "json")

	if got := LoggingConfig().Format; got != "json" {
		t.Errorf("expected format json from env, got %q", got)
	}
}
