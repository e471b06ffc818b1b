// Package log configures the process-wide zerolog logger and bridges the
// pkg/errors warning system into it, so ConvergenceWarning and friends come
// out as structured warn-level events.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	imberrors "github.com/skylearn/imbalance/pkg/errors"
)

// Setup initializes the global logger with a console writer and installs the
// zerolog warning sink. It returns the configured logger.
func Setup(loglevel string) zerolog.Logger {
	return SetupWithWriter(loglevel, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	})
}

// SetupWithWriter is Setup with an explicit output, used by tests.
func SetupWithWriter(loglevel string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ToLogLevel(loglevel))

	logger := zerolog.New(w).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger

	InstallWarningSink(logger)
	return logger
}

// ToLogLevel converts a level name into a zerolog level.
func ToLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

// InstallWarningSink routes pkg/errors warnings through the given logger.
// Warnings implementing zerolog.LogObjectMarshaler keep their structured
// fields.
func InstallWarningSink(logger zerolog.Logger) {
	imberrors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.EmbedObject(marshaler)
		}
		event.Msg(warning.Error())
	})
}
