package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/resume-scorer/internal/scoring"
)

// weightsFile is the on-disk shape of SCORING_WEIGHTS_FILE:
//
//	weights:
//	  keyword_match: 0.45
//	  action_verb: 0.2
type weightsFile struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoadWeights returns the scoring weight table. Without a file it returns the
// built-in defaults; a file must name every weighable heuristic and sum to 1.
func LoadWeights(path string) ([]scoring.Weight, error) {
	if path == "" {
		return scoring.DefaultWeights(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=config.LoadWeights: %w", err)
	}
	var f weightsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("op=config.LoadWeights: parse %s: %w", path, err)
	}
	ws, err := scoring.WeightsFromMap(f.Weights)
	if err != nil {
		return nil, fmt.Errorf("op=config.LoadWeights: %w", err)
	}
	return ws, nil
}
