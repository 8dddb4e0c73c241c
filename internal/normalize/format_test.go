package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textPayload(s string) Payload {
	return Sequence{Text{Text: s}}
}

func TestFormat_NoContent(t *testing.T) {
	_, err := Format(Sequence{})
	require.Error(t, err)

	var formatErr *Error
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, ErrNoContent, formatErr.Code)
}

func TestFormat_RemoteError(t *testing.T) {
	out, err := Format(textPayload(`{"error": "rate limited", "current_weather": {"temperature_celsius": 1}}`))
	require.Error(t, err)
	assert.Empty(t, out, "weather formatting must not run when the payload carries an error")

	var formatErr *Error
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, ErrRemote, formatErr.Code)
	assert.Equal(t, "rate limited", formatErr.Message)
}

func TestFormat_RemoteErrorObject(t *testing.T) {
	_, err := Format(textPayload(`{"error": {"code": 429}}`))

	var formatErr *Error
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, `{"code":429}`, formatErr.Message)
}

func TestFormat_CurrentWeatherMissingFields(t *testing.T) {
	out, err := Format(textPayload(`{"current_weather": {"temperature_celsius": 20}}`))
	require.NoError(t, err)

	assert.Contains(t, out, "20°C")
	assert.Contains(t, out, "🌍 **Unknown**")
	assert.Contains(t, out, "Conditions: N/A")
	assert.Contains(t, out, "Wind: N/A km/h")
	assert.Contains(t, out, "Humidity: N/A%")
}

func TestFormat_CurrentWeatherComplete(t *testing.T) {
	out, err := Format(textPayload(`{
		"location": "Berlin, Germany",
		"current_weather": {
			"temperature_celsius": 18.5,
			"weather_description": "Partly cloudy",
			"wind_speed_kmh": 12,
			"humidity_percent": 60
		}
	}`))
	require.NoError(t, err)

	expected := "🌍 **Berlin, Germany**\n\n" +
		"🌡️ Temperature: 18.5°C\n" +
		"🌤️ Conditions: Partly cloudy\n" +
		"💨 Wind: 12 km/h\n" +
		"💧 Humidity: 60%\n"
	assert.Equal(t, expected, out)
}

func TestFormat_CurrentWeatherNotObject(t *testing.T) {
	out, err := Format(textPayload(`{"location": "Oslo", "current_weather": null}`))
	require.NoError(t, err)
	assert.Contains(t, out, "🌍 **Oslo**")
	assert.Contains(t, out, "Temperature: N/A°C")
}

func TestFormat_LegacySchema(t *testing.T) {
	out, err := Format(textPayload(`{"location": "Tokyo", "temperature (°C)": 25, "timezone": "Asia/Tokyo"}`))
	require.NoError(t, err)

	expected := "🌍 **Tokyo**\n\n" +
		"🌡️ Temperature: 25°C\n" +
		"🌤️ Weather Code: N/A\n" +
		"🕐 Timezone: Asia/Tokyo\n" +
		"🕒 Local Time: N/A\n"
	assert.Equal(t, expected, out)
}

func TestFormat_GenericJSONKeepsKeyOrder(t *testing.T) {
	out, err := Format(textPayload(`{"zeta": 1, "alpha": {"b": true}}`))
	require.NoError(t, err)

	expected := "✅ Weather data:\n```json\n{\n  \"zeta\": 1,\n  \"alpha\": {\n    \"b\": true\n  }\n}\n```"
	assert.Equal(t, expected, out)
}

func TestFormat_PlainText(t *testing.T) {
	out, err := Format(textPayload("plain text result"))
	require.NoError(t, err)
	assert.Equal(t, "✅ Weather data:\n```\nplain text result\n```", out)
}

func TestFormat_JSONNotObject(t *testing.T) {
	out, err := Format(textPayload(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.Equal(t, "✅ Raw result:\n[1, 2, 3]", out)
}

func TestFormat_TextAcrossItems(t *testing.T) {
	// A JSON document split over several content items is joined before parsing
	out, err := Format(Sequence{
		Text{Text: `{"current_weather": `},
		Nested{Content: `{"temperature_celsius": -3}}`},
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "-3°C"), "expected joined document to be parsed, got %q", out)
}
