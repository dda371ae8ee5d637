package listview

import "log/slog"

// Notifier receives the transient success/failure notifications every
// mutation and failed load produces.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier reports notifications through a slog.Logger. It is the sink
// used by non-interactive callers such as jobs and tests.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Success(msg string) {
	if n.Logger != nil {
		n.Logger.Info("listview notification", slog.String("kind", "success"), slog.String("message", msg))
	}
}

func (n LogNotifier) Error(msg string) {
	if n.Logger != nil {
		n.Logger.Warn("listview notification", slog.String("kind", "error"), slog.String("message", msg))
	}
}
