// Package normalize turns loosely shaped tool results into display text.
package normalize

import (
	"fmt"
	"strings"
)

// TextExtractable is implemented by every item that can contribute text to a
// tool result. Raw is the default for items with no text of their own.
type TextExtractable interface {
	ExtractText() string
}

// Payload is a tool result in one of three shapes: Single, Sequence or Opaque.
type Payload interface {
	payload()
}

// Single is a result exposing exactly one content item.
type Single struct {
	Item TextExtractable
}

// Sequence is a result exposing ordered content items.
type Sequence []TextExtractable

// Opaque is a result with no further structure.
type Opaque struct {
	Value any
}

func (Single) payload()   {}
func (Sequence) payload() {}
func (Opaque) payload()   {}

// Text is an item carrying text directly.
type Text struct {
	Text string
}

// ExtractText returns the item text.
func (t Text) ExtractText() string { return t.Text }

// Nested is an item whose text lives in a nested content value.
type Nested struct {
	Content any
}

// ExtractText returns the string form of the nested content.
func (n Nested) ExtractText() string {
	if n.Content == nil {
		return ""
	}
	return fmt.Sprint(n.Content)
}

// Raw wraps an item with neither text nor nested content.
type Raw struct {
	Value any
}

// ExtractText returns the generic string form of the wrapped value.
func (r Raw) ExtractText() string {
	return fmt.Sprint(r.Value)
}

// Extract concatenates every text fragment of the payload in order.
func Extract(p Payload) string {
	switch v := p.(type) {
	case Single:
		return textOf(v.Item)
	case Sequence:
		var b strings.Builder
		for _, item := range v {
			b.WriteString(textOf(item))
		}
		return b.String()
	case Opaque:
		if v.Value == nil {
			return ""
		}
		return fmt.Sprint(v.Value)
	default:
		return ""
	}
}

func textOf(item TextExtractable) string {
	if item == nil {
		return ""
	}
	return item.ExtractText()
}
