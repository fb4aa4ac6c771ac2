package scoring

import "strings"

// bulletMarkers are the leading characters that make a line a bullet.
const bulletMarkers = "•-* "

// splitLines breaks text on every line boundary and drops empty lines.
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}

// nonBlankLines returns the trimmed, non-empty lines of s.
func nonBlankLines(s string) []string {
	raw := splitLines(s)
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Bullets returns the trimmed lines that start with a bullet marker.
func Bullets(text string) []string {
	var out []string
	for _, l := range nonBlankLines(text) {
		if strings.HasPrefix(l, "-") || strings.HasPrefix(l, "•") || strings.HasPrefix(l, "*") {
			out = append(out, l)
		}
	}
	return out
}

// firstWord returns the lower-cased first token of a bullet after stripping markers.
func firstWord(bullet string) string {
	body := strings.TrimSpace(strings.TrimLeft(bullet, bulletMarkers))
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
