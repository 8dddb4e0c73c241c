package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Error codes reported by Format.
const (
	ErrNoContent = "NO_CONTENT"
	ErrRemote    = "REMOTE_ERROR"
)

const notAvailable = "N/A"

// legacyTemperatureKey marks the older flat weather schema.
const legacyTemperatureKey = "temperature (°C)"

// Error is returned when a payload cannot be rendered as a result.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Format renders a tool result as display text.
//
// A payload without text yields an ErrNoContent error and a JSON object with an
// "error" key yields an ErrRemote error carrying that value. Known weather
// shapes become a short summary; other JSON is pretty-printed and anything
// else is shown verbatim in a code block.
func Format(p Payload) (string, error) {
	text := Extract(p)
	if text == "" {
		return "", &Error{Code: ErrNoContent, Message: "No content received from server"}
	}

	if !json.Valid([]byte(text)) {
		return "✅ Weather data:\n```\n" + text + "\n```", nil
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return "✅ Weather data:\n```\n" + text + "\n```", nil
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return "✅ Raw result:\n" + text, nil
	}

	if value, ok := obj["error"]; ok {
		return "", &Error{Code: ErrRemote, Message: display(value)}
	}

	if current, ok := obj["current_weather"]; ok {
		weather, _ := current.(map[string]any)
		return formatCurrent(obj, weather), nil
	}

	if _, ok := obj[legacyTemperatureKey]; ok {
		return formatLegacy(obj), nil
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		return "✅ Weather data:\n```\n" + text + "\n```", nil
	}
	return "✅ Weather data:\n```json\n" + indented.String() + "\n```", nil
}

func formatCurrent(obj, weather map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 **%s**\n\n", fieldOr(obj, "location", "Unknown"))
	fmt.Fprintf(&b, "🌡️ Temperature: %s°C\n", field(weather, "temperature_celsius"))
	fmt.Fprintf(&b, "🌤️ Conditions: %s\n", field(weather, "weather_description"))
	fmt.Fprintf(&b, "💨 Wind: %s km/h\n", field(weather, "wind_speed_kmh"))
	fmt.Fprintf(&b, "💧 Humidity: %s%%\n", field(weather, "humidity_percent"))
	return b.String()
}

func formatLegacy(obj map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌍 **%s**\n\n", fieldOr(obj, "location", "Unknown"))
	fmt.Fprintf(&b, "🌡️ Temperature: %s°C\n", field(obj, legacyTemperatureKey))
	fmt.Fprintf(&b, "🌤️ Weather Code: %s\n", field(obj, "weather_code"))
	fmt.Fprintf(&b, "🕐 Timezone: %s\n", field(obj, "timezone"))
	fmt.Fprintf(&b, "🕒 Local Time: %s\n", field(obj, "local_time"))
	return b.String()
}

func field(obj map[string]any, key string) string {
	return fieldOr(obj, key, notAvailable)
}

// fieldOr treats a missing key and an explicit null the same way.
func fieldOr(obj map[string]any, key, fallback string) string {
	value, ok := obj[key]
	if !ok || value == nil {
		return fallback
	}
	return display(value)
}

func display(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
