// mplus - MedicallyPlus Terminal Landing Experience
// Copyright (C) 2026 MedicallyPlus
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package logging builds the diagnostic logger. The terminal belongs to
// the UI, so records go to a rotating file with personal data masked.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/redactor"
	"gopkg.in/natefinch/lumberjack.v2"
)

// timeFormat avoids dashes so dates are never mistaken for phone numbers
// by the redactor.
const timeFormat = "2006/01/02 15:04:05"

// Logger is a charmbracelet logger that owns its file sink.
type Logger struct {
	*log.Logger
	Redactor *redactor.Redactor
	closer   io.Closer
}

// New opens the log file described by cfg. verbose forces debug level.
func New(cfg config.LogConfig, verbose bool) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = log.DebugLevel
	}

	path := config.LogFile(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(cfg.MaxSizeMB, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		Compress:   true,
	}

	l := NewWriter(lj, level)
	l.closer = lj
	return l, nil
}

// NewWriter logs to w through a fresh redactor. Used by New and by tests.
func NewWriter(w io.Writer, level log.Level) *Logger {
	red := redactor.New()
	logger := log.NewWithOptions(red.Writer(w), log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Formatter:       log.LogfmtFormatter,
	})
	return &Logger{Logger: logger, Redactor: red}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, log.FatalLevel)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// ParseLevel converts a configured level name.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level: %s", level)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
