package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("^```[a-zA-Z]*\n?")

// StripFences removes a surrounding Markdown code fence, which models often
// wrap JSON replies in.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = fenceRe.ReplaceAllString(text, "")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// ExtractJSONArray locates and validates the first JSON array in a model
// reply, tolerating fenced code blocks and surrounding prose. The returned
// bytes are ready for unmarshalling.
func ExtractJSONArray(text string) ([]byte, error) {
	cleaned := StripFences(text)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	candidate := []byte(cleaned[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("failed to parse JSON array from model response")
	}
	return candidate, nil
}
