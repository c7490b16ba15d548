package main

import (
	"log/slog"
	"os"
)

func main() {
	// Configure structured logging to stderr; --verbose replaces it before running.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})))

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("coursereport failed", "err", err)
		os.Exit(1)
	}
}
