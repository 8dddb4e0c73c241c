package main

import (
	"os"

	"github.com/rs/zerolog"

	"weather-mcp-client/internal/server"
)

var version = "dev" // Overridden by ldflags

func main() {
	cfg := server.DefaultConfig()

	// Configure logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	if err := NewRootCommand(cfg, logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
