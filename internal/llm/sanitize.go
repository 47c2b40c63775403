package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Backends are observed to wrap valid JSON in markdown fences or a redundant
// layer of quoting. CleanResponse strips that noise without touching the JSON
// content itself.
var (
	fenceOpen  = regexp.MustCompile("(?m)^```[a-zA-Z]*[ \t]*\n?")
	fenceClose = regexp.MustCompile("(?m)\n?```[ \t]*$")
)

// CleanResponse normalizes a raw model reply so it can be JSON-decoded:
// markdown fences first, then stray backticks, then a single wrapping quote
// pair (only when it wraps a JSON object or array), then surrounding
// whitespace. Plain JSON input passes through unchanged apart from trimming.
func CleanResponse(text string) string {
	if text == "" {
		return text
	}

	s := fenceOpen.ReplaceAllString(text, "")
	s = fenceClose.ReplaceAllString(s, "")

	s = strings.Trim(strings.TrimSpace(s), "`")
	s = strings.TrimSpace(s)

	if len(s) > 2 {
		first, last := s[0], s[len(s)-1]
		wrapped := (first == '\'' && last == '\'') || (first == '"' && last == '"')
		if wrapped && (s[1] == '{' || s[1] == '[') {
			s = s[1 : len(s)-1]
		}
	}

	return strings.TrimSpace(s)
}

// DecodeJSON sanitizes raw and decodes it as a top-level JSON object. Failures
// are reported as *InvalidResponseError carrying both the original and the
// sanitized text.
func DecodeJSON(raw string) (map[string]any, error) {
	cleaned := CleanResponse(raw)

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &InvalidResponseError{Raw: raw, Cleaned: cleaned, Err: err}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, &InvalidResponseError{Raw: raw, Cleaned: cleaned, Err: errors.New("top-level JSON value is not an object")}
	}
	return obj, nil
}
