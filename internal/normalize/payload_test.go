package normalize

import (
	"fmt"
	"testing"
)

type point struct {
	X, Y int
}

func TestExtract_SequenceMixedItems(t *testing.T) {
	third := point{X: 1, Y: 2}
	payload := Sequence{
		Text{Text: "A"},
		Nested{Content: "B"},
		Raw{Value: third},
	}

	got := Extract(payload)
	expected := "A" + "B" + fmt.Sprint(third)

	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestExtract_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		expected string
	}{
		{name: "nil payload", payload: nil, expected: ""},
		{name: "single text", payload: Single{Item: Text{Text: "hello"}}, expected: "hello"},
		{name: "single nil item", payload: Single{}, expected: ""},
		{name: "single raw", payload: Single{Item: Raw{Value: 42}}, expected: "42"},
		{name: "empty sequence", payload: Sequence{}, expected: ""},
		{name: "nested nil content", payload: Sequence{Nested{}}, expected: ""},
		{name: "nested number", payload: Sequence{Nested{Content: 3.5}}, expected: "3.5"},
		{name: "opaque nil", payload: Opaque{}, expected: ""},
		{name: "opaque string", payload: Opaque{Value: "raw body"}, expected: "raw body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.payload); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
