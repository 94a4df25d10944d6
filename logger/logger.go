package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/morler/codeassist/logger/contracts"
	"github.com/pterm/pterm"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger fans every message out to a set of pterm loggers.
type Logger struct {
	sinks []*pterm.Logger
	file  *os.File
}

// New creates the run logger: colorful output on stdout plus a JSON log file
// named after the start time inside logDir.
func New(logDir string, now time.Time) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s_codeassist.log", now.Format("2006-01-02_15-04-05")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &Logger{
		sinks: []*pterm.Logger{
			newSink(os.Stdout, pterm.LogFormatterColorful),
			newSink(file, pterm.LogFormatterJSON),
		},
		file: file,
	}, nil
}

// NewWithWriter creates a logger with a single sink; used for custom outputs.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{sinks: []*pterm.Logger{newSink(w, pterm.LogFormatterJSON)}}
}

func newSink(w io.Writer, formatter pterm.LogFormatter) *pterm.Logger {
	return pterm.DefaultLogger.
		WithWriter(w).
		WithFormatter(formatter).
		WithLevel(pterm.LogLevelInfo).
		WithTime(true).
		WithTimeFormat(timeFormat)
}

// Path returns the log file location, or "" when the logger has no file.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

func (l *Logger) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, sink := range l.sinks {
		sink.Info(msg)
	}
}

func (l *Logger) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, sink := range l.sinks {
		sink.Warn(msg)
	}
}

func (l *Logger) Critical(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	for _, sink := range l.sinks {
		sink.Error(msg, sink.Args("severity", "critical"))
	}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

var _ contracts.ILogger = (*Logger)(nil)
