package scoring

import (
	"regexp"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// ActionVerbs counts bullets whose first word is a known action verb.
type ActionVerbs struct{}

func (ActionVerbs) Name() string { return NameActionVerb }

func (ActionVerbs) Score(in Input) Signal {
	matched, total := CountActionVerbs(in.Resume)
	return Signal{Matched: matched, Total: total, Value: Ratio(matched, total)}
}

func (ActionVerbs) Record(b *domain.ScoreBreakdown, s Signal) {
	b.ActionVerb = clamp01(Ratio(s.Matched, s.Total))
	b.ActionVerbBullets = s.Matched
	b.TotalBullets = s.Total
}

// CountActionVerbs returns (bullets starting with an action verb, all bullets).
func CountActionVerbs(resume string) (int, int) {
	bullets := Bullets(resume)
	matched := 0
	for _, b := range bullets {
		if _, ok := actionVerbs[firstWord(b)]; ok {
			matched++
		}
	}
	return matched, len(bullets)
}

// IsActionVerb reports whether word (any case) is in the curated verb list.
func IsActionVerb(word string) bool {
	_, ok := actionVerbs[firstWord(word)]
	return ok
}

// quantityPattern matches a standalone number, optionally with % or $.
var quantityPattern = regexp.MustCompile(`\b[\d%$]+\b`)

// QuantifiedExperience counts bullets that carry a number.
type QuantifiedExperience struct{}

func (QuantifiedExperience) Name() string { return NameQuantifiedExperience }

func (QuantifiedExperience) Score(in Input) Signal {
	matched, total := CountQuantified(in.Resume)
	return Signal{Matched: matched, Total: total, Value: Ratio(matched, total)}
}

func (QuantifiedExperience) Record(b *domain.ScoreBreakdown, s Signal) {
	b.QuantifiedExperience = clamp01(Ratio(s.Matched, s.Total))
	b.QuantifiedBullets = s.Matched
	b.TotalBullets = s.Total
}

// CountQuantified returns (quantified bullets, all bullets).
func CountQuantified(resume string) (int, int) {
	bullets := Bullets(resume)
	matched := 0
	for _, b := range bullets {
		if quantityPattern.MatchString(b) {
			matched++
		}
	}
	return matched, len(bullets)
}
