// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the trip-keeper server and client.
//
// Every entry carries the process role, a timestamp and the calling function
// in the "func" field. Request and session scoped loggers travel in a
// context and are read back with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ClientLogFile is the name of the client log written next to the executable.
// The terminal belongs to the UI, so the client never logs to stdout.
const ClientLogFile = "trip-keeper-client.log"

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

var setupOnce sync.Once

func setupGlobals() {
	setupOnce.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// New returns a JSON logger writing to w.
func New(w io.Writer, role string) *Logger {
	setupGlobals()
	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
	return &Logger{l}
}

// NewLogger is the server logger: JSON lines on stdout.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewClientLogger appends to [ClientLogPath]. If the file cannot be opened
// the logger is silent rather than drawing over the TUI.
func NewClientLogger(role string) *Logger {
	f, err := os.OpenFile(ClientLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Nop()
	}
	return New(f, role)
}

// ClientLogPath is [ClientLogFile] in the directory of the running binary.
func ClientLogPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ClientLogFile
	}
	return filepath.Join(filepath.Dir(exe), ClientLogFile)
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Component returns a child logger tagged with the component name. Fields
// added to the child do not leak into the parent.
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// FromRequest is FromContext for the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's WithContext.
// Without one, zerolog's default logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
