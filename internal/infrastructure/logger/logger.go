package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/config"
)

// NewLogger creates the service logger writing to stdout
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	return newLogger(cfg, os.Stdout), nil
}

// NewCLILogger creates a logger for the terminal client. It writes to w so
// diagnostics never mix with rendered results on stdout.
func NewCLILogger(level string, w io.Writer) *zap.Logger {
	return newLogger(&config.LogConfig{Level: level, Format: "console"}, w)
}

func newLogger(cfg *config.LogConfig, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder

	encoder := zapcore.NewJSONEncoder(enc)
	if cfg.Format == "console" {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(enc)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}
