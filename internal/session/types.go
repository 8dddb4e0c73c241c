package session

import (
	"time"

	"weather-mcp-client/internal/mcp"
	"weather-mcp-client/internal/tools"
)

// Session represents the single negotiated connection to the tool server
type Session struct {
	conn        mcp.Conn
	Connected   bool
	Tools       *tools.Catalog
	ConnectedAt time.Time
}

// Reply is what an operation hands back to the display layer.
// Text is always set; Kind is empty on success and an error code otherwise.
type Reply struct {
	Text string `json:"text"`
	Kind string `json:"kind,omitempty"`
	Tool string `json:"tool,omitempty"`
}

// OK reports whether the reply is a success
func (r Reply) OK() bool {
	return r.Kind == ""
}

// Status is a snapshot of the session for display
type Status struct {
	Connected   bool      `json:"connected"`
	Tools       []string  `json:"tools"`
	ConnectedAt time.Time `json:"connected_at,omitempty"`
}

// Client defines the operations the display surfaces trigger
type Client interface {
	// Connect (re)establishes the session and caches the advertised tools
	Connect() Reply

	// GetWeather calls the weather tool for a "city, country" location
	GetWeather(location string) Reply

	// Status returns the current connection state
	Status() Status
}
