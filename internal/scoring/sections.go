package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// RequiredSections are matched as case-insensitive substrings, no synonyms.
var RequiredSections = []string{"education", "experience", "skills"}

// SectionCoverage is the fraction of required section keywords present.
type SectionCoverage struct{}

func (SectionCoverage) Name() string { return NameSectionCoverage }

func (SectionCoverage) Score(in Input) Signal {
	lower := strings.ToLower(in.Resume)
	found := 0
	for _, s := range RequiredSections {
		if strings.Contains(lower, s) {
			found++
		}
	}
	return Signal{Matched: found, Total: len(RequiredSections), Value: Ratio(found, len(RequiredSections))}
}

func (SectionCoverage) Record(b *domain.ScoreBreakdown, s Signal) {
	b.SectionCoverage = clamp01(s.Value)
}

// MaxLineLength is the longest line, in characters, that earns length credit.
const MaxLineLength = 120

// Formatting blends capitalization (60%) and line length compliance (40%).
// A document with no lines gets full credit on both; that is a product policy
// kept from the first version of the scorer, not a property of the metric.
type Formatting struct{}

func (Formatting) Name() string { return NameFormatting }

func (Formatting) Score(in Input) Signal {
	capRatio, lenRatio := FormattingRatios(in.Resume)
	return Signal{Value: round3(0.6*capRatio + 0.4*lenRatio)}
}

func (Formatting) Record(b *domain.ScoreBreakdown, s Signal) { b.Formatting = clamp01(s.Value) }

// FormattingRatios returns (capitalized lines, lines within MaxLineLength) as fractions.
func FormattingRatios(text string) (float64, float64) {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return 1, 1
	}
	capitalized, short := 0, 0
	for _, l := range lines {
		if r, _ := utf8.DecodeRuneInString(l); unicode.IsUpper(r) {
			capitalized++
		}
		if utf8.RuneCountInString(l) <= MaxLineLength {
			short++
		}
	}
	return Ratio(capitalized, len(lines)), Ratio(short, len(lines))
}
