package server

import "time"

// EndpointURL is the MCP server every session connects to.
const EndpointURL = "https://chris4k-weather.hf.space/gradio_api/mcp/sse"

// Config contains the application configuration.
// Values are compiled in; there are no flags or environment overrides.
type Config struct {
	// Addr is the listen address of the web form.
	Addr string

	// EndpointURL is the SSE endpoint of the tool server.
	EndpointURL string

	// ClientName and ClientVersion are sent during capability negotiation.
	ClientName    string
	ClientVersion string

	// MetricsInterval is how often system metrics are sampled.
	MetricsInterval time.Duration

	// LogLevel is the zerolog level name.
	LogLevel string
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Addr:            ":7860",
		EndpointURL:     EndpointURL,
		ClientName:      "weather-mcp-client",
		ClientVersion:   "1.0.0",
		MetricsInterval: 15 * time.Second,
		LogLevel:        "info",
	}
}
