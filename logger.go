package g3d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so callers skip
// attribute formatting entirely.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(discardHandler{}))
}

// SetLogger installs the logger shared by g3d and its sub-packages.
// Passing nil restores the default silent logger. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: debug scopes, texture and buffer (re)creation
//   - [slog.LevelWarn]: resources that could not be created or uploaded
//
// Example:
//
//	g3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	current.Store(l)
}

// Logger returns the logger installed with SetLogger.
// Sub-packages read it on every use, so a later SetLogger takes effect
// immediately.
func Logger() *slog.Logger {
	return current.Load()
}
