// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the console log shared by the collision model and the
// tool. It is a thin printf layer over a zerolog.Logger.
package conlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = New(os.Stderr, zerolog.InfoLevel)
)

// New returns a console formatted logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// SetLogger replaces the logger used by all package functions.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the current logger, e.g. to attach fields.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// ParseLevel accepts zerolog level names plus "warning".
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

func msg(format string, v []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}

func Printf(format string, v ...interface{}) {
	Logger().Info().Msg(msg(format, v))
}

// DPrintf only shows up with debug logging.
func DPrintf(format string, v ...interface{}) {
	Logger().Debug().Msg(msg(format, v))
}

func Warnf(format string, v ...interface{}) {
	Logger().Warn().Msg(msg(format, v))
}
