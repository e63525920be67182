package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

// Configure sets the global log level and output format.
// Level is one of trace, debug, info, warn, error; format is "console" or "json".
func Configure(level, format string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	var out = logger
	switch format {
	case "json":
		out = zerolog.New(os.Stderr).With().Timestamp().Logger()
	default:
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	logger = out.Level(parsed)
}

// Trace logs a message at trace level with optional key/value pairs
func Trace(msg string, keyvals ...interface{}) {
	emit(logger.Trace(), msg, keyvals)
}

// Debug logs a message at debug level with optional key/value pairs
func Debug(msg string, keyvals ...interface{}) {
	emit(logger.Debug(), msg, keyvals)
}

// Info logs a message at info level with optional key/value pairs
func Info(msg string, keyvals ...interface{}) {
	emit(logger.Info(), msg, keyvals)
}

// Warn logs a message at warn level with optional key/value pairs
func Warn(msg string, keyvals ...interface{}) {
	emit(logger.Warn(), msg, keyvals)
}

// Error logs a message at error level with optional key/value pairs
func Error(msg string, keyvals ...interface{}) {
	emit(logger.Error(), msg, keyvals)
}

func emit(event *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keyvals[i])
		}
		event = event.Interface(key, keyvals[i+1])
	}
	event.Msg(msg)
}
