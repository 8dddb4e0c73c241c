package server

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test listen address
	if cfg.Addr != ":7860" {
		t.Errorf("Expected Addr to be ':7860', got %s", cfg.Addr)
	}

	// Test endpoint
	if cfg.EndpointURL != "https://chris4k-weather.hf.space/gradio_api/mcp/sse" {
		t.Errorf("Unexpected EndpointURL %s", cfg.EndpointURL)
	}

	// Test metrics interval
	if cfg.MetricsInterval != 15*time.Second {
		t.Errorf("Expected MetricsInterval to be 15 seconds, got %v", cfg.MetricsInterval)
	}

	// Test log level
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be 'info', got %s", cfg.LogLevel)
	}
}

func TestConfigNonZeroValues(t *testing.T) {
	cfg := DefaultConfig()

	// Ensure no zero values that would cause panics
	if cfg.MetricsInterval <= 0 {
		t.Error("MetricsInterval should be positive")
	}

	if cfg.ClientName == "" || cfg.ClientVersion == "" {
		t.Error("Client identity should be set")
	}
}
