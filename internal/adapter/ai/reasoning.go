package ai

import (
	"regexp"
	"strings"
)

var thinkBlock = regexp.MustCompile(`(?is)<think(?:ing)?>.*?</think(?:ing)?>`)

// StripReasoning removes chain-of-thought blocks some models emit before the
// answer, plus a wrapping markdown fence.
func StripReasoning(s string) string {
	s = thinkBlock.ReplaceAllString(s, "")
	// An unmatched closing tag means the opening one was cut off upstream.
	if i := strings.LastIndex(strings.ToLower(s), "</think>"); i >= 0 {
		s = s[i+len("</think>"):]
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimPrefix(s[:len(s)-3], "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " \t") {
			s = s[nl+1:]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
