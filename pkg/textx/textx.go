// Package textx provides small text utilities used across the project.
package textx

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// SanitizeText removes control characters except tab/newline, folds CRLF, lone
// CR and the other line separators (VT, FF, FS, GS, RS) into newlines, and trims
// surrounding space. Line structure is kept because bullet and formatting
// heuristics read it.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r', r == '\v', r == '\f', r >= 0x1c && r <= 0x1e:
			b.WriteByte('\n')
		case r == '\n' || r == '\t' || (r >= 32 && r != 127):
			if r == utf8.RuneError {
				continue
			}
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

var htmlTag = regexp.MustCompile(`(?i)<\s*(html|body|div|p|ul|ol|li|br|h[1-6]|span|table)\b[^>]*>`)

// LooksLikeHTML reports whether s contains common block or inline HTML tags.
func LooksLikeHTML(s string) bool { return htmlTag.MatchString(s) }

var blankRun = regexp.MustCompile(`[ \t]+`)

// HTMLToText flattens an HTML fragment into lines. List items become "- "
// bullets and block elements end a line.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, iframe").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var lines []string
	for _, l := range strings.Split(doc.Text(), "\n") {
		l = strings.TrimSpace(blankRun.ReplaceAllString(l, " "))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// NormalizeJobDescription accepts plain text or pasted HTML and returns
// sanitized plain text. HTML that fails to parse is treated as plain text.
func NormalizeJobDescription(s string) string {
	if LooksLikeHTML(s) {
		if text, err := HTMLToText(s); err == nil {
			s = text
		}
	}
	return SanitizeText(s)
}

// Truncate returns at most n characters of s without splitting a rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
