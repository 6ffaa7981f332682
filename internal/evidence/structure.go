package evidence

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Violation is a single structural check failure.
type Violation struct {
	Path     string
	Message  string
	Expected string
	Actual   string
}

// Format renders the violation as an evidence-ready line.
func (v *Violation) Format() string {
	s := fmt.Sprintf("%s: %s", v.Path, v.Message)
	if v.Expected != "" {
		s += fmt.Sprintf(" (expected %s, got %s)", v.Expected, v.Actual)
	}
	return s
}

// Structure performs structural shape checks over parsed JSON or YAML
// documents: required keys and value kinds. It is deliberately not a
// general JSON-Schema validator.
type Structure struct{}

// LoadDocument parses raw JSON or YAML content into a map. The ext
// hint (".json", ".yaml", ...) selects the parser; unknown extensions
// try YAML first since it is a superset of JSON.
func (s *Structure) LoadDocument(content []byte, ext string) (map[string]any, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var data map[string]any
	switch ext {
	case "json":
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("parse error: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			if jsonErr := json.Unmarshal(content, &data); jsonErr != nil {
				return nil, fmt.Errorf("parse error: %w", err)
			}
		}
	}
	if data == nil {
		return nil, fmt.Errorf("expected a mapping at document root")
	}
	return data, nil
}

// CheckRequiredKeys verifies that every required key is present.
// Keys support dot-notation for nested lookups ("provider.model").
func (s *Structure) CheckRequiredKeys(data map[string]any, required []string) []Violation {
	var violations []Violation
	for _, key := range required {
		parts := strings.Split(key, ".")
		current := any(data)
		pathSoFar := ""

		for _, part := range parts {
			if pathSoFar == "" {
				pathSoFar = part
			} else {
				pathSoFar = pathSoFar + "." + part
			}
			m, ok := current.(map[string]any)
			if !ok {
				violations = append(violations, Violation{
					Path:     pathSoFar,
					Message:  "Required key is missing",
					Expected: fmt.Sprintf("key %q to be present", part),
					Actual:   "key absent",
				})
				break
			}
			val, present := m[part]
			if !present {
				violations = append(violations, Violation{
					Path:     pathSoFar,
					Message:  "Required key is missing",
					Expected: fmt.Sprintf("key %q to be present", part),
					Actual:   "key absent",
				})
				break
			}
			current = val
		}
	}
	return violations
}

// CheckKinds verifies that values at dot-paths have the expected kind:
// "string", "number", "bool", "map", or "list". Missing paths are not
// violations here; pair with CheckRequiredKeys for presence.
func (s *Structure) CheckKinds(data map[string]any, kinds map[string]string) []Violation {
	var violations []Violation
	for path, expected := range kinds {
		current := any(data)
		found := true
		for _, part := range strings.Split(path, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				found = false
				break
			}
			val, present := m[part]
			if !present {
				found = false
				break
			}
			current = val
		}
		if !found {
			continue
		}
		if actual := kindOf(current); actual != expected {
			violations = append(violations, Violation{
				Path:     path,
				Message:  "Wrong type",
				Expected: expected,
				Actual:   actual,
			})
		}
	}
	return violations
}

// FormatViolations joins violations into one evidence-ready string.
func (s *Structure) FormatViolations(violations []Violation) string {
	if len(violations) == 0 {
		return "(no schema violations)"
	}
	lines := make([]string, len(violations))
	for i := range violations {
		lines[i] = violations[i].Format()
	}
	return strings.Join(lines, "\n")
}

func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	case map[string]any:
		return "map"
	case []any:
		return "list"
	case nil:
		return "null"
	}
	return "unknown"
}
