// Package logging provides the structured loggers used across the server:
// one per subsystem (connection manager, router, supervisor), all sharing a
// global level filter and an optional file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the DEBUG/INFO/WARN/ERROR filter used throughout the server.
type Level int8

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	globalMu    sync.RWMutex
	globalLevel = INFO
)

// SetGlobalLevel changes the minimum level every Logger emits.
func SetGlobalLevel(l Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLevel = l
	zerolog.SetGlobalLevel(l.zerologLevel())
}

// Logger wraps a zerolog.Logger bound to a fixed "component" field, giving
// callers the Info/Warn/Error/Debug/Fatal surface the rest of the codebase
// is written against.
type Logger struct {
	mu        sync.Mutex
	component string
	out       io.Writer
	file      *os.File
	base      zerolog.Logger
}

func newLogger(component string) *Logger {
	l := &Logger{component: component, out: os.Stderr}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	console := zerolog.ConsoleWriter{Out: l.out, TimeFormat: time.RFC3339}
	l.base = zerolog.New(console).With().Timestamp().Str("component", l.component).Logger()
}

// SetFile redirects this logger's output to the given path in addition to
// stderr, creating parent directories as needed. Passing an empty path
// restores stderr-only output.
func (l *Logger) SetFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if path == "" {
		l.out = os.Stderr
		l.rebuild()
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l.file = f
	l.out = io.MultiWriter(os.Stderr, f)
	l.rebuild()
	return nil
}

func (l *Logger) level() Level {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLevel
}

func (l *Logger) log(lvl Level, format string, args ...interface{}) {
	if lvl < l.level() {
		return
	}
	l.mu.Lock()
	event := l.base.WithLevel(lvl.zerologLevel())
	l.mu.Unlock()
	event.Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// Fatal logs at ERROR level and terminates the process, matching the
// teacher's Fatal behavior for unrecoverable startup failures.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
	os.Exit(1)
}

// Well-known component loggers used by the rest of the server.
var (
	ConnManager = newLogger("connmgr")
	Router      = newLogger("router")
	Supervisor  = newLogger("supervisor")
	Rooms       = newLogger("rooms")
	Players     = newLogger("players")
)

// InitializeFileLogging points every component logger at a file inside dir,
// named after the component. Failures are returned, not fatal — callers may
// choose to continue with console-only logging.
func InitializeFileLogging(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	for _, l := range []*Logger{ConnManager, Router, Supervisor, Rooms, Players} {
		if err := l.SetFile(filepath.Join(dir, l.component+".log")); err != nil {
			return err
		}
	}
	return nil
}

// SetFileAll points every component logger at the same single file, used
// when the operator configures one log_file for the whole process.
func SetFileAll(path string) error {
	for _, l := range []*Logger{ConnManager, Router, Supervisor, Rooms, Players} {
		if err := l.SetFile(path); err != nil {
			return err
		}
	}
	return nil
}
