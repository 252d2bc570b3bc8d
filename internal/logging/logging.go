// Package logging builds the *log.Logger values handed to zotion's
// components. Everything goes to stderr; with a log file configured it is
// also appended there, with size-based rotation.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/steveyegge/zotion/internal/config"
)

// Loggers hands out prefixed loggers that share one destination.
type Loggers struct {
	out     io.Writer
	file    *lumberjack.Logger
	verbose bool
}

// New creates Loggers writing to stderr and, if cfg.File is set, to a
// rotated log file. Call Close when done.
func New(cfg config.Log) *Loggers {
	return newLoggers(os.Stderr, cfg)
}

func newLoggers(stderr io.Writer, cfg config.Log) *Loggers {
	l := &Loggers{out: stderr, verbose: cfg.Verbose}
	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		l.out = io.MultiWriter(stderr, l.file)
	}
	return l
}

// Named returns a logger whose lines start with "[name] ".
func (l *Loggers) Named(name string) *log.Logger {
	return log.New(l.out, "["+name+"] ", log.LstdFlags)
}

// Verbose reports whether request-level logging is enabled.
func (l *Loggers) Verbose() bool {
	return l.verbose
}

// Close closes the log file, if any.
func (l *Loggers) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
