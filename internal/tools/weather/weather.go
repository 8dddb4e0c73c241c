package weather

import (
	"strings"
)

// Keyword selects the weather tool among the advertised tools.
const Keyword = "weather"

// Examples are the sample locations offered by the display surfaces.
var Examples = []string{
	"Berlin, Germany",
	"Tokyo, Japan",
	"New York, USA",
	"London, UK",
	"Sydney, Australia",
}

// Args represents the arguments for the weather tool.
type Args struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// ParseLocation splits free text on the first comma into city and country.
// Both parts are trimmed; country is empty when there is no comma.
func ParseLocation(location string) Args {
	city, country, found := strings.Cut(location, ",")
	if !found {
		return Args{City: strings.TrimSpace(location)}
	}
	return Args{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
	}
}

// Map returns the arguments in the shape sent with a tool call.
func (a Args) Map() map[string]any {
	return map[string]any{
		"city":    a.City,
		"country": a.Country,
	}
}
