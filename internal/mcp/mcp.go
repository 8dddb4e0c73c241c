// Package mcp connects the session manager to a remote MCP server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"weather-mcp-client/internal/normalize"
	"weather-mcp-client/internal/tools"
)

// Conn is one negotiated connection to a tool server.
type Conn interface {
	// Initialize performs capability negotiation.
	Initialize(ctx context.Context) error

	// ListTools returns the advertised tools in server order.
	ListTools(ctx context.Context) ([]tools.Tool, error)

	// CallTool invokes a tool and waits for its single response.
	CallTool(ctx context.Context, name string, args map[string]any) (normalize.Payload, error)

	// Close releases the underlying transport.
	Close() error
}

// Dialer opens connections to a fixed endpoint.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// SSEDialer opens MCP connections over server-sent events.
type SSEDialer struct {
	url           string
	clientName    string
	clientVersion string
	logger        zerolog.Logger
}

// NewSSEDialer creates a dialer for the given SSE endpoint.
func NewSSEDialer(url, clientName, clientVersion string, logger zerolog.Logger) *SSEDialer {
	return &SSEDialer{
		url:           url,
		clientName:    clientName,
		clientVersion: clientVersion,
		logger:        logger.With().Str("component", "sse_dialer").Logger(),
	}
}

// Dial opens the event stream. ctx bounds the lifetime of the stream, not
// just the dial.
func (d *SSEDialer) Dial(ctx context.Context) (Conn, error) {
	c, err := client.NewSSEMCPClient(d.url)
	if err != nil {
		return nil, fmt.Errorf("create sse client: %w", err)
	}

	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("open event stream: %w", err)
	}

	d.logger.Debug().
		Str("url", d.url).
		Msg("Event stream opened")

	return &sseConn{
		client:        c,
		clientName:    d.clientName,
		clientVersion: d.clientVersion,
		logger:        d.logger,
	}, nil
}

type sseConn struct {
	client        *client.Client
	clientName    string
	clientVersion string
	logger        zerolog.Logger
}

func (c *sseConn) Initialize(ctx context.Context) error {
	req := gomcp.InitializeRequest{}
	req.Params.ProtocolVersion = gomcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = gomcp.Implementation{
		Name:    c.clientName,
		Version: c.clientVersion,
	}
	req.Params.Capabilities = gomcp.ClientCapabilities{}

	result, err := c.client.Initialize(ctx, req)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	c.logger.Info().
		Str("server_name", result.ServerInfo.Name).
		Str("server_version", result.ServerInfo.Version).
		Str("protocol_version", result.ProtocolVersion).
		Msg("Session initialized")

	return nil
}

func (c *sseConn) ListTools(ctx context.Context) ([]tools.Tool, error) {
	var list []tools.Tool

	req := gomcp.ListToolsRequest{}
	for {
		result, err := c.client.ListTools(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}

		for _, tool := range result.Tools {
			list = append(list, toTool(tool))
		}

		if result.NextCursor == "" {
			return list, nil
		}
		req.Params.Cursor = result.NextCursor
	}
}

func (c *sseConn) CallTool(ctx context.Context, name string, args map[string]any) (normalize.Payload, error) {
	req := gomcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call tool %s: %w", name, err)
	}

	if result.IsError {
		c.logger.Warn().
			Str("tool", name).
			Msg("Tool reported an error result")
	}

	return ToPayload(result), nil
}

func (c *sseConn) Close() error {
	return c.client.Close()
}

func toTool(tool gomcp.Tool) tools.Tool {
	schema := tool.RawInputSchema
	if len(schema) == 0 {
		if encoded, err := json.Marshal(tool.InputSchema); err == nil {
			schema = encoded
		}
	}
	return tools.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schema,
	}
}

// ToPayload maps a tool call result onto the normalizer's payload shapes.
func ToPayload(result *gomcp.CallToolResult) normalize.Payload {
	if result == nil || len(result.Content) == 0 {
		return normalize.Opaque{}
	}

	items := make(normalize.Sequence, 0, len(result.Content))
	for _, content := range result.Content {
		items = append(items, toItem(content))
	}
	return items
}

func toItem(content gomcp.Content) normalize.TextExtractable {
	switch v := content.(type) {
	case gomcp.TextContent:
		return normalize.Text{Text: v.Text}
	case *gomcp.TextContent:
		return normalize.Text{Text: v.Text}
	case gomcp.EmbeddedResource:
		return normalize.Nested{Content: resourceText(v.Resource)}
	case *gomcp.EmbeddedResource:
		return normalize.Nested{Content: resourceText(v.Resource)}
	default:
		return normalize.Raw{Value: content}
	}
}

func resourceText(resource gomcp.ResourceContents) any {
	switch r := resource.(type) {
	case gomcp.TextResourceContents:
		return r.Text
	case *gomcp.TextResourceContents:
		return r.Text
	case gomcp.BlobResourceContents:
		return r.Blob
	case *gomcp.BlobResourceContents:
		return r.Blob
	default:
		return resource
	}
}
