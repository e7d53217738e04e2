package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging for the dashboard server.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger

	debugOn bool
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr, debug)
}

// NewLoggerTo creates a Logger with explicit writers, mainly for tests.
func NewLoggerTo(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		info:    log.New(out, "", 0),
		warn:    log.New(out, "", 0),
		err:     log.New(errOut, "", 0),
		debug:   log.New(out, "", 0),
		debugOn: debug,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger { return NewLoggerTo(io.Discard, io.Discard, false) }

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Printf("[%s] INFO  %s", l.timestamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Printf("[%s] WARN  %s", l.timestamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf("[%s] ERROR %s", l.timestamp(), fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debugOn {
		return
	}
	l.debug.Printf("[%s] DEBUG %s", l.timestamp(), fmt.Sprintf(format, args...))
}
