package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
// Combining marks break a token.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// KeywordMatch is the TF-IDF cosine similarity between resume and job text.
// IDF is computed jointly over exactly the two documents, smoothed as
// ln((1+n)/(1+df)) + 1, and vectors are L2-normalized.
type KeywordMatch struct{}

func (KeywordMatch) Name() string { return NameKeywordMatch }

func (KeywordMatch) Score(in Input) Signal {
	return Signal{Value: CosineTFIDF(in.Resume, in.Job)}
}

func (KeywordMatch) Record(b *domain.ScoreBreakdown, s Signal) { b.KeywordMatch = clamp01(s.Value) }

// CosineTFIDF returns the similarity of a and b rounded to three decimals.
// Either side being empty or stop-word only yields 0.
func CosineTFIDF(a, b string) float64 {
	ta, tb := termCounts(a), termCounts(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	const docs = 2.0
	idf := func(term string) float64 {
		df := 0.0
		if ta[term] > 0 {
			df++
		}
		if tb[term] > 0 {
			df++
		}
		return math.Log((1+docs)/(1+df)) + 1
	}

	var dot, na, nb float64
	for term, ca := range ta {
		w := idf(term)
		va := float64(ca) * w
		na += va * va
		if cb, ok := tb[term]; ok {
			dot += va * float64(cb) * w
		}
	}
	for term, cb := range tb {
		vb := float64(cb) * idf(term)
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp01(round3(dot / (math.Sqrt(na) * math.Sqrt(nb))))
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		counts[tok]++
	}
	return counts
}
