package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// StripFences removes a surrounding Markdown code fence, if present.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.Join(lines[1:endIdx], "\n")
}

// ParseJSONResponse parses an LLM response into out, tolerating Markdown code
// fences around the JSON body.
func ParseJSONResponse(text string, out any) error {
	cleaned := StripFences(text)
	if cleaned == "" {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("parsing LLM response as JSON: %w", err)
	}
	return nil
}

var quoted = regexp.MustCompile(`"([^"\n]+)"`)

// ExtractQuoted is the lenient fallback parser: it pulls up to max quoted
// substrings out of a malformed response. Heuristic only; callers use it when
// ParseJSONResponse fails on list-shaped responses.
func ExtractQuoted(text string, max int) []string {
	matches := quoted.FindAllStringSubmatch(text, -1)
	var out []string
	for _, m := range matches {
		s := strings.TrimSpace(m[1])
		if s == "" {
			continue
		}
		out = append(out, s)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
