package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger builds the diagnostic logger. Logs go to w (stderr in
// production) so they never interleave with the report on stdout.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: false,
		Prefix:          "goldrun",
	})
	if verbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler)
}
