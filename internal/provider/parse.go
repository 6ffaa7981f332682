package provider

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	objRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON pulls a JSON object out of a model response, tolerating
// markdown fences and surrounding prose.
func ExtractJSON(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)

	// Direct parse first
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	// Fenced code block
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &out); err == nil {
			return out, nil
		}
	}

	// Any object-looking span
	if m := objRe.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), &out); err == nil {
			return out, nil
		}
	}

	preview := raw
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return nil, fmt.Errorf("no parseable JSON object in response, first 200 chars: %q", preview)
}
