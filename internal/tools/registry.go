package tools

import (
	"fmt"
	"strings"
)

// Catalog is the ordered list of tools advertised by one session.
// It is replaced wholesale on reconnect and never mutated afterwards.
type Catalog struct {
	tools []Tool
}

// NewCatalog creates a catalog holding a copy of the given tools in order.
func NewCatalog(list []Tool) *Catalog {
	tools := make([]Tool, len(list))
	copy(tools, list)
	return &Catalog{tools: tools}
}

// Len returns the number of advertised tools.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tools)
}

// List returns a copy of the advertised tools in server order.
func (c *Catalog) List() []Tool {
	if c == nil {
		return nil
	}
	tools := make([]Tool, len(c.tools))
	copy(tools, c.tools)
	return tools
}

// Names returns the tool names in server order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.tools))
	for _, tool := range c.tools {
		names = append(names, tool.Name)
	}
	return names
}

// Get returns a tool by exact name.
func (c *Catalog) Get(name string) (Tool, bool) {
	if c == nil {
		return Tool{}, false
	}
	for _, tool := range c.tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

// FindByKeyword returns the first tool whose name contains keyword, ignoring case.
func (c *Catalog) FindByKeyword(keyword string) (Tool, error) {
	if c != nil {
		needle := strings.ToLower(keyword)
		for _, tool := range c.tools {
			if strings.Contains(strings.ToLower(tool.Name), needle) {
				return tool, nil
			}
		}
	}
	return Tool{}, &Error{
		Code:    "tool_not_found",
		Message: fmt.Sprintf("no tool matching %q", keyword),
	}
}

// Error represents a tool lookup error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}
