package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls where and how much the application logs.
type Config struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // console or json
}

// Setup builds a logger that writes full detail to the log file and
// warnings and above to stderr. The returned func flushes and closes it.
func Setup(cfg Config) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var fileEnc zapcore.Encoder
	if cfg.Format == "json" {
		fileEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		fileEnc = zapcore.NewConsoleEncoder(encCfg)
	}

	stderrLevel := zapcore.WarnLevel
	if level > stderrLevel {
		stderrLevel = level
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), stderrLevel),
	}

	closeFile := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.Lock(f), level))
		closeFile = func() { f.Close() }
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger, cleanup, nil
}
