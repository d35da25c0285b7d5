package provider

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fenceOpenRE = regexp.MustCompile(`(?i)^` + "```" + `(?:json)?\s*`)
var fenceCloseRE = regexp.MustCompile(`\s*` + "```" + `$`)

// ErrBadPayload means the model reply held no parseable JSON document.
var ErrBadPayload = errors.New("no JSON document in model reply")

// ExtractJSON pulls the JSON document out of a model reply that may be
// wrapped in markdown fences or surrounded by prose. It returns the first
// balanced-looking {...} or [...] span and verifies it parses.
func ExtractJSON(text string) (json.RawMessage, error) {
	clean := strings.TrimSpace(text)
	clean = fenceOpenRE.ReplaceAllString(clean, "")
	clean = fenceCloseRE.ReplaceAllString(clean, "")

	start := -1
	for _, c := range []string{"{", "["} {
		if i := strings.Index(clean, c); i >= 0 && (start == -1 || i < start) {
			start = i
		}
	}
	end := strings.LastIndexAny(clean, "}]")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var probe any
	if err := json.Unmarshal([]byte(clean), &probe); err != nil {
		return nil, ErrBadPayload
	}
	return json.RawMessage(clean), nil
}
