package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ArgumentError reports a tool argument that failed validation. It is
// raised before any request leaves the process.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidateArgs checks the supplied arguments against the tool's schema
// and returns a normalized copy: numbers become int, arrays []string,
// objects map[string]any. Defaults fill in omitted arguments. Empty
// optional values are dropped. The first violation aborts the call, so
// nothing reaches the upstream API on bad input.
func ValidateArgs(ts ToolSpec, args map[string]any) (map[string]any, error) {
	byName := make(map[string]ParamSpec, len(ts.Params))
	for _, p := range ts.Params {
		byName[p.Name] = p
	}
	for name := range args {
		if _, ok := byName[name]; !ok {
			return nil, &ArgumentError{Field: name, Reason: "is not a recognized parameter"}
		}
	}

	norm := make(map[string]any, len(args))
	for _, p := range ts.Params {
		raw, ok := args[p.Name]
		if !ok || raw == nil {
			if p.Required {
				return nil, &ArgumentError{Field: p.Name, Reason: "parameter is required"}
			}
			if p.Default != nil {
				norm[p.Name] = p.Default
			}
			continue
		}
		val, err := normalizeParam(p, raw)
		if err != nil {
			return nil, err
		}
		if val == nil {
			// Empty values count as omitted, which a required
			// parameter cannot be.
			if p.Required {
				return nil, &ArgumentError{Field: p.Name, Reason: "parameter is required"}
			}
			if p.Default != nil {
				norm[p.Name] = p.Default
			}
			continue
		}
		norm[p.Name] = val
	}
	return norm, nil
}

// normalizeParam coerces one argument to its canonical Go shape. A nil
// result with no error means the value is empty and should be treated
// as omitted.
func normalizeParam(p ParamSpec, raw any) (any, error) {
	switch p.Type {
	case "string":
		s, ok := raw.(string)
		if !ok {
			return nil, &ArgumentError{Field: p.Name, Reason: "must be a string"}
		}
		if s == "" {
			return nil, nil
		}
		if len(p.Enum) > 0 && !containsString(p.Enum, s) {
			return nil, &ArgumentError{
				Field:  p.Name,
				Reason: fmt.Sprintf("must be one of: %s", strings.Join(p.Enum, ", ")),
			}
		}
		return s, nil

	case "number":
		n, ok := toInt(raw)
		if !ok {
			return nil, &ArgumentError{Field: p.Name, Reason: "must be an integer"}
		}
		if p.Minimum != nil && n < *p.Minimum {
			return nil, &ArgumentError{
				Field:  p.Name,
				Reason: fmt.Sprintf("must be at least %d", *p.Minimum),
			}
		}
		return n, nil

	case "boolean":
		b, ok := raw.(bool)
		if !ok {
			return nil, &ArgumentError{Field: p.Name, Reason: "must be a boolean"}
		}
		return b, nil

	case "array":
		items, ok := toStringSlice(raw)
		if !ok {
			return nil, &ArgumentError{Field: p.Name, Reason: "must be an array of strings"}
		}
		if len(items) == 0 {
			return nil, nil
		}
		return items, nil

	case "object":
		obj, ok := toObject(raw)
		if !ok {
			return nil, &ArgumentError{Field: p.Name, Reason: "must be a JSON object"}
		}
		if obj == nil {
			return nil, nil
		}
		return obj, nil
	}
	return raw, nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// toInt accepts the numeric shapes a JSON decoder or a test may supply.
// Fractional values are rejected since every numeric parameter here is
// an integer.
func toInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// toStringSlice normalizes an array argument. Numeric elements are
// rendered as decimal strings so callers may pass site IDs as numbers.
func toStringSlice(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				out = append(out, e)
			case int:
				out = append(out, strconv.Itoa(e))
			case float64:
				out = append(out, strconv.FormatFloat(e, 'f', -1, 64))
			case json.Number:
				out = append(out, e.String())
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// toObject normalizes an object argument. Objects are declared as
// strings in the tool schema, so the usual shape is JSON text; a real
// map is accepted too. Empty text and JSON null normalize to nil.
func toObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, true
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, false
		}
		return obj, true
	}
	return nil, false
}
