package deployprep

import (
	"context"
	"log/slog"
	"net/http"
)

type AppLogger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

type HttpClienter interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prompter supplies operator answers. Ask returns the trimmed line.
type Prompter interface {
	Ask(label string) string
	Confirm(label string) bool
}
