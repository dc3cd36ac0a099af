package room

import (
	"log"
	"time"
)

// Logger is the logging surface the room engine needs. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts a function into a Logger.
type LoggerFunc func(format string, args ...any)

func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Clock supplies the engine's notion of now.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

func defaultLogger() Logger { return log.Default() }
