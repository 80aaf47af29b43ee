package llm

import (
	"regexp"
	"strings"
)

var (
	thinkPattern = regexp.MustCompile(`(?is)<think>.*?</think>`)
	fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// stripThinking removes chain-of-thought <think>...</think> blocks that
// some models emit before the actual answer.
func stripThinking(s string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(s, ""))
}

// extractJSON pulls a JSON document out of a model response: a fenced
// code block if present, otherwise the first {...} object, otherwise
// the trimmed response as-is.
func extractJSON(s string) string {
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}
