// Package logger wraps charm/log for the md2docx command line.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// Levels re-exported so callers need not import charm/log.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

// New creates a logger at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// LevelFor maps the quiet and verbose switches to a level. Quiet wins.
func LevelFor(quiet, verbose bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs the configuration source in use.
func (l *Logger) ConfigLoaded(source string) {
	l.Debug("config loaded", "source", source)
}

// PoolSized logs the resolved worker count.
func (l *Logger) PoolSized(workers, files int) {
	l.Debug("worker pool", "workers", workers, "files", files)
}

// FileConverted logs a successful conversion.
func (l *Logger) FileConverted(source, dest string, size int, duration time.Duration) {
	l.Debug("file converted",
		"source", source,
		"dest", dest,
		"size", humanize.Bytes(uint64(max(size, 0))),
		"duration", duration.Round(time.Millisecond))
}

// ConversionError logs a failed conversion.
func (l *Logger) ConversionError(source string, err error) {
	l.Error("conversion failed",
		"source", source,
		"error", err)
}

// BatchCompleted logs the outcome of a batch.
func (l *Logger) BatchCompleted(succeeded, failed int, duration time.Duration) {
	l.Debug("batch completed",
		"succeeded", succeeded,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// UnknownEnv warns about an unrecognized MD2DOCX_* variable.
func (l *Logger) UnknownEnv(name string) {
	l.Warn("unknown environment variable (typo?)", "name", name)
}
