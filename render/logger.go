// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so callers skip
// message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the diagnostics sink for the render package. By
// default nothing is logged. Pass nil to restore the silent default.
//
// Levels used: Debug for state transitions, Warn for degraded rendering
// (skipped draws, capability fallbacks), Error for compile/link and driver
// errors. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current diagnostics sink.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

var warned sync.Map

// warnOnce reports msg at most once per key for the lifetime of the process,
// no matter how many draws hit the same unsupported capability.
func warnOnce(key, msg string, args ...any) {
	if _, loaded := warned.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	Logger().Warn(msg, args...)
}
