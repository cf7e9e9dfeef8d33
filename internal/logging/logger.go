// Package logging builds the console logger used by the CLI.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing info messages to stdout and warnings and
// errors to stderr. Debug messages go to stdout too when debug is set.
// Levels are printed only in debug mode.
func New(stdout, stderr io.Writer, debug bool) *zap.SugaredLogger {
	levelKey := ""
	if debug {
		levelKey = "level"
	}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         levelKey,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})

	stdoutLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		if debug {
			return l == zapcore.DebugLevel || l == zapcore.InfoLevel
		}
		return l == zapcore.InfoLevel
	})
	stderrLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})

	return zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(stdout), stdoutLevels),
		zapcore.NewCore(encoder, zapcore.AddSync(stderr), stderrLevels),
	)).Sugar()
}
