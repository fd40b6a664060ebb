package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns an slog logger that drops everything, for wiring
// services under test without log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
