// Package main provides the interopcheck CLI for resolving
// interoperability profiles and checking their schema conformance.
package main

import (
	"log/slog"
	"os"
)

func main() {
	// Setup structured logging before any command runs; root.go re-levels
	// it once flags are parsed.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	Execute()
}
