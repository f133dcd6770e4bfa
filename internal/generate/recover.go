package generate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the structured reply expected from a model. All fields are
// required; a record missing any of them is rejected whole.
type Record struct {
	Headline string `json:"headline"`
	Dek      string `json:"dek"`
	Body     string `json:"body"`
	Section  string `json:"section"`
	Author   string `json:"author"`
}

// RecoverRecord recovers a Record from raw model output. Models sometimes
// wrap the JSON in prose or code fences, so the text is de-fenced and then
// sliced between the first '{' and the last '}' before parsing.
func RecoverRecord(text string) (*Record, error) {
	stripped := stripFences(text)

	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var rec Record
	if err := json.Unmarshal([]byte(stripped[start:end+1]), &rec); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	for key, val := range map[string]string{
		"headline": rec.Headline,
		"dek":      rec.Dek,
		"body":     rec.Body,
		"section":  rec.Section,
		"author":   rec.Author,
	} {
		if strings.TrimSpace(val) == "" {
			return nil, fmt.Errorf("model output missing required field %q", key)
		}
	}

	return &rec, nil
}

var fenceMarkers = []string{"```json", "```JSON", "```"}

func stripFences(s string) string {
	for _, marker := range fenceMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	return strings.TrimSpace(s)
}
