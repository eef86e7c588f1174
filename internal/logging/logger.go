package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface used across the board
// services. It is an interface so handlers and the engine can be tested
// with a no-op implementation.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

type zapLogger struct {
	logger *zap.Logger
}

// NewLogger builds a zap-backed logger. Environment is "development" or
// "production"; unknown levels default to info.
func NewLogger(environment, logLevel string) (Logger, error) {
	var cfg zap.Config
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return &zapLogger{logger: logger}, nil
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.logger.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...zap.Field) { l.logger.Fatal(msg, fields...) }

// With returns a child logger with fields permanently attached.
func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

// Sync flushes buffered entries; call before process exit.
func (l *zapLogger) Sync() error { return l.logger.Sync() }

// NoOpLogger discards everything. Useful for tests.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) Info(msg string, fields ...zap.Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...zap.Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) Fatal(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) With(fields ...zap.Field) Logger       { return l }
func (l *NoOpLogger) Sync() error                           { return nil }

// NewNoOpLogger creates a no-op logger for testing.
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}
