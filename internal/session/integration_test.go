package session

import (
	"context"
	"strings"
	"testing"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"weather-mcp-client/internal/loop"
	"weather-mcp-client/internal/mcp"
)

// startWeatherServer runs an MCP server over SSE whose weather tool answers
// with the given JSON document.
func startWeatherServer(t *testing.T, toolName, body string) string {
	t.Helper()

	s := server.NewMCPServer("weather-integration", "1.0.0", server.WithToolCapabilities(false))
	s.AddTool(gomcp.NewTool(toolName,
		gomcp.WithDescription("Current weather"),
		gomcp.WithString("city", gomcp.Required()),
		gomcp.WithString("country"),
	), func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		return gomcp.NewToolResultText(body), nil
	})

	ts := server.NewTestServer(s)
	t.Cleanup(ts.Close)

	return ts.URL + "/sse"
}

func TestIntegration_ConnectAndGetWeather(t *testing.T) {
	url := startWeatherServer(t, "get_current_weather", `{
		"location": "Berlin, Germany",
		"current_weather": {
			"temperature_celsius": 14,
			"weather_description": "Overcast",
			"wind_speed_kmh": 9.4,
			"humidity_percent": 71
		}
	}`)

	l := loop.New(zerolog.Nop())
	defer l.Close()

	manager := NewManager(mcp.NewSSEDialer(url, "weather-mcp-client", "test", zerolog.Nop()), l, zerolog.Nop())
	defer manager.Close()

	reply := manager.Connect()
	if !reply.OK() {
		t.Fatalf("Failed to connect: %s", reply.Text)
	}

	if !strings.Contains(reply.Text, "get_current_weather") {
		t.Errorf("Expected tool name in connect message, got %q", reply.Text)
	}

	reply = manager.GetWeather("Berlin, Germany")
	if !reply.OK() {
		t.Fatalf("Failed to get weather: %s", reply.Text)
	}

	expected := "🌍 **Berlin, Germany**\n\n" +
		"🌡️ Temperature: 14°C\n" +
		"🌤️ Conditions: Overcast\n" +
		"💨 Wind: 9.4 km/h\n" +
		"💧 Humidity: 71%\n"
	if reply.Text != expected {
		t.Errorf("Expected %q, got %q", expected, reply.Text)
	}
}

func TestIntegration_Reconnect(t *testing.T) {
	url := startWeatherServer(t, "weather", `{"error": "city not found"}`)

	l := loop.New(zerolog.Nop())
	defer l.Close()

	manager := NewManager(mcp.NewSSEDialer(url, "weather-mcp-client", "test", zerolog.Nop()), l, zerolog.Nop())
	defer manager.Close()

	for i := 0; i < 2; i++ {
		if reply := manager.Connect(); !reply.OK() {
			t.Fatalf("Connect %d failed: %s", i+1, reply.Text)
		}
	}

	reply := manager.GetWeather("Atlantis")
	if reply.Kind != ErrRemote {
		t.Fatalf("Expected kind %s, got %+v", ErrRemote, reply)
	}

	if reply.Text != "❌ Error: city not found" {
		t.Errorf("Unexpected message: %q", reply.Text)
	}
}

func TestIntegration_Unreachable(t *testing.T) {
	l := loop.New(zerolog.Nop())
	defer l.Close()

	manager := NewManager(mcp.NewSSEDialer("http://127.0.0.1:1/sse", "weather-mcp-client", "test", zerolog.Nop()), l, zerolog.Nop())

	reply := manager.Connect()
	if reply.Kind != ErrConnectionFailed {
		t.Fatalf("Expected kind %s, got %+v", ErrConnectionFailed, reply)
	}
}
