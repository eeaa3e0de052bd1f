package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default JSON logger. When the Postgres store driver is
// active, main later swaps the default for a MultiHandler that also feeds the
// system-log sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
