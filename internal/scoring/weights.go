package scoring

import (
	"fmt"
	"math"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// weightTolerance bounds how far the weight sum may drift from 1.
const weightTolerance = 1e-9

// Weight binds a heuristic name to its share of the final score.
type Weight struct {
	Name   string
	Weight float64
	Value  func(domain.ScoreBreakdown) float64
}

// valueFuncs maps every weighable heuristic to the breakdown field it reads.
// Education is a pass/fail gate and is intentionally absent.
var valueFuncs = map[string]func(domain.ScoreBreakdown) float64{
	NameKeywordMatch:         func(b domain.ScoreBreakdown) float64 { return b.KeywordMatch },
	NameActionVerb:           func(b domain.ScoreBreakdown) float64 { return b.ActionVerb },
	NameQuantifiedExperience: func(b domain.ScoreBreakdown) float64 { return b.QuantifiedExperience },
	NameSectionCoverage:      func(b domain.ScoreBreakdown) float64 { return b.SectionCoverage },
	NameFormatting:           func(b domain.ScoreBreakdown) float64 { return b.Formatting },
}

// DefaultWeightMap is the production weighting.
func DefaultWeightMap() map[string]float64 {
	return map[string]float64{
		NameKeywordMatch:         0.45,
		NameActionVerb:           0.20,
		NameQuantifiedExperience: 0.20,
		NameSectionCoverage:      0.05,
		NameFormatting:           0.10,
	}
}

// DefaultWeights returns the production table in a stable order.
func DefaultWeights() []Weight {
	w, err := WeightsFromMap(DefaultWeightMap())
	if err != nil {
		panic(err)
	}
	return w
}

// weightOrder fixes iteration order so the final score is deterministic.
var weightOrder = []string{
	NameKeywordMatch,
	NameActionVerb,
	NameQuantifiedExperience,
	NameSectionCoverage,
	NameFormatting,
}

// WeightsFromMap builds a validated weight table from name → weight pairs.
// Every weighable heuristic must be present.
func WeightsFromMap(m map[string]float64) ([]Weight, error) {
	for name := range m {
		if _, ok := valueFuncs[name]; !ok {
			return nil, fmt.Errorf("%w: unknown heuristic %q", domain.ErrInvalidArgument, name)
		}
	}
	out := make([]Weight, 0, len(weightOrder))
	for _, name := range weightOrder {
		w, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing weight for %q", domain.ErrInvalidArgument, name)
		}
		out = append(out, Weight{Name: name, Weight: w, Value: valueFuncs[name]})
	}
	if err := ValidateWeights(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateWeights checks the table is a convex combination over unique heuristics.
func ValidateWeights(ws []Weight) error {
	if len(ws) == 0 {
		return fmt.Errorf("%w: empty weight table", domain.ErrInvalidArgument)
	}
	seen := make(map[string]struct{}, len(ws))
	sum := 0.0
	for _, w := range ws {
		if w.Value == nil {
			return fmt.Errorf("%w: weight %q has no value accessor", domain.ErrInvalidArgument, w.Name)
		}
		if w.Weight < 0 || math.IsNaN(w.Weight) {
			return fmt.Errorf("%w: weight %q must be non-negative", domain.ErrInvalidArgument, w.Name)
		}
		if _, dup := seen[w.Name]; dup {
			return fmt.Errorf("%w: duplicate weight %q", domain.ErrInvalidArgument, w.Name)
		}
		seen[w.Name] = struct{}{}
		sum += w.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", domain.ErrInvalidArgument, sum)
	}
	return nil
}
