// Package scoring implements the resume heuristics and the weighted aggregator.
//
// Every heuristic is a pure function of the resume/job text pair. Scorers never
// fail: degenerate input (empty text, no bullets) maps to documented zero or
// full-credit conventions.
package scoring

import (
	"math"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// Heuristic names, also used as keys of the weight table.
const (
	NameKeywordMatch         = "keyword_match"
	NameActionVerb           = "action_verb"
	NameQuantifiedExperience = "quantified_experience"
	NameSectionCoverage      = "section_coverage"
	NameFormatting           = "formatting"
	NameEducationMatch       = "education_match"
)

// Input is the normalized text pair every scorer consumes.
type Input struct {
	Resume string
	Job    string
}

// Signal is a scorer's raw output. Ratio scorers fill Value, count scorers fill
// Matched/Total, validators fill Pass.
type Signal struct {
	Value   float64
	Matched int
	Total   int
	Pass    bool
}

// Scorer is one independent heuristic.
type Scorer interface {
	Name() string
	Score(in Input) Signal
	// Record writes the signal into the field of the breakdown the scorer owns.
	Record(b *domain.ScoreBreakdown, s Signal)
}

// DefaultScorers returns the six heuristics in a stable order.
func DefaultScorers() []Scorer {
	return []Scorer{
		KeywordMatch{},
		ActionVerbs{},
		QuantifiedExperience{},
		SectionCoverage{},
		Formatting{},
		EducationMatch{},
	}
}

// Ratio returns matched/total, or 0 when there is nothing to count.
func Ratio(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// Percent scales a [0,1] score to a percentage rounded to two decimals.
func Percent(v float64) float64 {
	return math.Round(v*100*100) / 100
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
