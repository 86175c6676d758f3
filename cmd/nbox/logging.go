package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// setupLogging installs a tinted slog handler on stderr. Warnings only by
// default; --verbose turns on debug logging of every API call.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	})))
}
