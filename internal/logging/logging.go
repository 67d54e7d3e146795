// Package logging configures the process-wide slog default.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Setup installs the default slog logger: a colorized tint handler when the
// output is a terminal, JSON otherwise (log collectors expect one object per
// line).
func Setup(out io.Writer) {
	slog.SetDefault(slog.New(newHandler(out)))
}

func newHandler(out io.Writer) slog.Handler {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return tint.NewHandler(out, &tint.Options{
			TimeFormat: time.TimeOnly,
		})
	}
	return slog.NewJSONHandler(out, nil)
}
