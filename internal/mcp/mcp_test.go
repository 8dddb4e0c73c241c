package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"weather-mcp-client/internal/normalize"
)

func TestToPayload_Empty(t *testing.T) {
	if got := normalize.Extract(ToPayload(nil)); got != "" {
		t.Errorf("Expected empty text for nil result, got %q", got)
	}

	payload := ToPayload(&gomcp.CallToolResult{})
	if _, ok := payload.(normalize.Opaque); !ok {
		t.Errorf("Expected Opaque payload for empty content, got %T", payload)
	}
}

func TestToPayload_MixedContent(t *testing.T) {
	image := gomcp.ImageContent{Type: "image", Data: "aGk=", MIMEType: "image/png"}
	result := &gomcp.CallToolResult{
		Content: []gomcp.Content{
			gomcp.TextContent{Type: "text", Text: "A"},
			gomcp.EmbeddedResource{
				Type: "resource",
				Resource: gomcp.TextResourceContents{
					URI:  "weather://berlin",
					Text: "B",
				},
			},
			image,
		},
	}

	payload := ToPayload(result)
	seq, ok := payload.(normalize.Sequence)
	if !ok {
		t.Fatalf("Expected Sequence payload, got %T", payload)
	}

	if len(seq) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(seq))
	}

	expected := "A" + "B" + fmt.Sprint(image)
	if got := normalize.Extract(payload); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func newTestServer(t *testing.T) string {
	t.Helper()

	s := server.NewMCPServer("weather-test", "1.0.0", server.WithToolCapabilities(false))
	s.AddTool(gomcp.NewTool("echo",
		gomcp.WithDescription("Echo input"),
		gomcp.WithString("input"),
	), func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		return gomcp.NewToolResultText("echo"), nil
	})
	s.AddTool(gomcp.NewTool("get_weather",
		gomcp.WithDescription("Current weather for a city"),
		gomcp.WithString("city", gomcp.Required()),
		gomcp.WithString("country"),
	), func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		args, _ := any(req.Params.Arguments).(map[string]any)
		body, err := json.Marshal(map[string]any{
			"location": fmt.Sprintf("%v, %v", args["city"], args["country"]),
			"current_weather": map[string]any{
				"temperature_celsius": 21,
			},
		})
		if err != nil {
			return nil, err
		}
		return gomcp.NewToolResultText(string(body)), nil
	})

	ts := server.NewTestServer(s)
	t.Cleanup(ts.Close)

	return ts.URL + "/sse"
}

func TestSSEDialer_EndToEnd(t *testing.T) {
	url := newTestServer(t)
	dialer := NewSSEDialer(url, "weather-mcp-client-test", "0.0.1", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := dialer.Dial(ctx)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	if err := conn.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	list, err := conn.ListTools(ctx)
	if err != nil {
		t.Fatalf("Failed to list tools: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(list))
	}

	found := false
	for _, tool := range list {
		if tool.Name == "get_weather" {
			found = true
			if len(tool.InputSchema) == 0 {
				t.Error("Expected input schema to be carried over")
			}
		}
	}
	if !found {
		t.Fatal("Expected get_weather in tool list")
	}

	payload, err := conn.CallTool(ctx, "get_weather", map[string]any{"city": "Berlin", "country": "Germany"})
	if err != nil {
		t.Fatalf("Failed to call tool: %v", err)
	}

	out, err := normalize.Format(payload)
	if err != nil {
		t.Fatalf("Failed to format result: %v", err)
	}

	if want := "🌍 **Berlin, Germany**"; !strings.Contains(out, want) {
		t.Errorf("Expected output to contain %q, got %q", want, out)
	}
	if want := "21°C"; !strings.Contains(out, want) {
		t.Errorf("Expected output to contain %q, got %q", want, out)
	}
}

func TestSSEDialer_Unreachable(t *testing.T) {
	dialer := NewSSEDialer("http://127.0.0.1:1/sse", "weather-mcp-client-test", "0.0.1", zerolog.Nop())

	if _, err := dialer.Dial(context.Background()); err == nil {
		t.Fatal("Expected dial to an unreachable endpoint to fail")
	}
}
