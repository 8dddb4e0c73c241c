package tools

import "encoding/json"

// Tool describes a tool advertised by the remote server.
type Tool struct {
	// Name is unique within a session and is what calls are addressed to.
	Name string `json:"name"`

	Description string `json:"description,omitempty"`

	// InputSchema is carried for display only; calls never validate against it.
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}
