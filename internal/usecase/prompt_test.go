package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

func TestBuildFeedbackPrompt(t *testing.T) {
	b := domain.ScoreBreakdown{
		FinalScore:           0.61234,
		KeywordMatch:         0.5,
		ActionVerb:           2.0 / 3.0,
		QuantifiedExperience: 1,
		Formatting:           0.875,
		SectionCoverage:      0,
	}
	p := BuildFeedbackPrompt("my resume", "the job", b)

	assert.Contains(t, p, "Resume Text:\n\"\"\"\nmy resume\n\"\"\"")
	assert.Contains(t, p, "Job Description:\n\"\"\"\nthe job\n\"\"\"")
	assert.Contains(t, p, "- Final Score: 61.23 / 100")
	assert.Contains(t, p, "- Keyword Match Score: 50%")
	assert.Contains(t, p, "- Action Verb Score: 66.67%")
	assert.Contains(t, p, "- Quantified Experience Score: 100%")
	assert.Contains(t, p, "- Formatting Score: 87.5%")
	assert.Contains(t, p, "- Section Coverage Score: 0%")
	assert.Contains(t, p, "2. 3 clear improvement suggestions (bullet points).")
	assert.Contains(t, p, "3. Optionally, a suggested new resume title.")
}

func TestBuildFeedbackPrompt_TruncatesByCharacters(t *testing.T) {
	resume := strings.Repeat("é", ExcerptLimit+500)
	job := strings.Repeat("j", ExcerptLimit+1)
	p := BuildFeedbackPrompt(resume, job, domain.ScoreBreakdown{})

	assert.Contains(t, p, strings.Repeat("é", ExcerptLimit)+"\n\"\"\"")
	assert.NotContains(t, p, strings.Repeat("é", ExcerptLimit+1))
	assert.NotContains(t, p, strings.Repeat("j", ExcerptLimit+1))
	assert.True(t, utf8.ValidString(p))
}
