// Package mcp exposes the Maverick site-management API as MCP tools.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// paramTypes is the closed set of schema types a ParamSpec may declare.
var paramTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "array": true, "object": true,
}

// ToolSpec declares one MCP tool and the schema of its arguments. The
// catalog is static; specs are validated once at registration.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// ParamSpec describes one tool argument.
type ParamSpec struct {
	Name        string
	Type        string // string, number, boolean, array, object
	Description string
	Required    bool
	Enum        []string // allowed values for string params
	Default     any      // applied at dispatch when the argument is omitted
	Minimum     *int     // lower bound for number params, enforced at dispatch
}

// ValidateToolSpec checks a catalog entry for declaration mistakes.
// The catalog is compiled in, so a failure here is a programming error
// and registration aborts.
func ValidateToolSpec(ts ToolSpec) error {
	if ts.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ts.Description == "" {
		return fmt.Errorf("tool %q has empty description", ts.Name)
	}
	seen := make(map[string]bool, len(ts.Params))
	for _, p := range ts.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ts.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q declares parameter %q twice", ts.Name, p.Name)
		}
		seen[p.Name] = true
		if !paramTypes[p.Type] {
			return fmt.Errorf("tool %q parameter %q has unsupported type %q", ts.Name, p.Name, p.Type)
		}
		if len(p.Enum) > 0 && p.Type != "string" {
			return fmt.Errorf("tool %q parameter %q declares an enum on type %q", ts.Name, p.Name, p.Type)
		}
		if p.Minimum != nil && p.Type != "number" {
			return fmt.Errorf("tool %q parameter %q declares a minimum on type %q", ts.Name, p.Name, p.Type)
		}
		if p.Default != nil {
			if err := validateDefault(p); err != nil {
				return fmt.Errorf("tool %q parameter %q: %w", ts.Name, p.Name, err)
			}
		}
	}
	return nil
}

func validateDefault(p ParamSpec) error {
	switch p.Type {
	case "number":
		if _, ok := p.Default.(int); !ok {
			return fmt.Errorf("default %v is not an int", p.Default)
		}
	case "boolean":
		if _, ok := p.Default.(bool); !ok {
			return fmt.Errorf("default %v is not a bool", p.Default)
		}
	case "string":
		if _, ok := p.Default.(string); !ok {
			return fmt.Errorf("default %v is not a string", p.Default)
		}
	default:
		return fmt.Errorf("defaults are not supported for type %q", p.Type)
	}
	return nil
}

// BuildMCPTool converts a ToolSpec into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ts ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ts.Description)}
	for _, p := range ts.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ts.Name, opts...)
}

// buildParamOption maps a ParamSpec to the appropriate mcp-go tool option.
func buildParamOption(p ParamSpec) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		if d, ok := p.Default.(int); ok {
			opts = append(opts, mcp.DefaultNumber(float64(d)))
		}
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		if d, ok := p.Default.(bool); ok {
			opts = append(opts, mcp.DefaultBool(d))
		}
		return mcp.WithBoolean(p.Name, opts...)
	case "array":
		opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		return mcp.WithArray(p.Name, opts...)
	default:
		// string and object params are both declared as strings; object
		// values arrive as JSON text and are decoded at dispatch.
		if len(p.Enum) > 0 {
			opts = append(opts, mcp.Enum(p.Enum...))
		}
		if d, ok := p.Default.(string); ok {
			opts = append(opts, mcp.DefaultString(d))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
