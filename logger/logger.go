// Package logger holds the process logger used by febasis packages.
//
// The library is silent by default; the CLI calls Initialize to install a
// console logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured log entries.
const (
	FieldFamily  = "family"
	FieldCell    = "cell"
	FieldDegree  = "degree"
	FieldVariant = "variant"
	FieldDofs    = "dofs"
	FieldPoints  = "points"
)

// Logger is the global sugared logger. It is never nil.
var Logger = zap.NewNop().Sugar()

// Initialize installs a development console logger. Debug entries are only
// emitted when verbose is set.
func Initialize(verbose bool) error {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapLogger, err := config.Build()
	if err != nil {
		return err
	}
	Logger = zapLogger.Sugar()
	return nil
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}

// Debugw logs a debug message with structured fields.
func Debugw(msg string, keysAndValues ...interface{}) {
	Logger.Debugw(msg, keysAndValues...)
}

// Infow logs an info message with structured fields.
func Infow(msg string, keysAndValues ...interface{}) {
	Logger.Infow(msg, keysAndValues...)
}
