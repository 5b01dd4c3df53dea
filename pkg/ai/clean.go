package ai

import (
	"regexp"
	"strings"
)

// reasoningSpan matches <think>...</think> style blocks, non-greedy, any case, across lines
var reasoningSpan = regexp.MustCompile(`(?is)<think>.*?</think>|<thinking>.*?</thinking>`)

// StripReasoning removes reasoning blocks and trims surrounding whitespace
func StripReasoning(s string) string {
	return strings.TrimSpace(reasoningSpan.ReplaceAllString(s, ""))
}
