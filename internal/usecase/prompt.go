package usecase

import (
	"strconv"
	"strings"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-scorer/pkg/textx"
)

// ExcerptLimit caps how many characters of each text reach the LLM.
const ExcerptLimit = 3000

// SystemPrompt frames the reviewer persona for every feedback call.
const SystemPrompt = "You are a professional resume reviewer. Based on the user's resume, job description, " +
	"and evaluation scores, give tailored, constructive feedback to help improve the resume."

// BuildFeedbackPrompt renders the user message: both excerpts, the percentage
// breakdown, and the three-part instructions.
func BuildFeedbackPrompt(resume, job string, b domain.ScoreBreakdown) string {
	pct := func(v float64) string { return strconv.FormatFloat(scoring.Percent(v), 'f', -1, 64) }

	var sb strings.Builder
	sb.WriteString("Here is a resume and job description, along with its automated evaluation scores.\n\n")
	sb.WriteString("------------------------\n")
	sb.WriteString("Resume Text:\n\"\"\"\n")
	sb.WriteString(textx.Truncate(resume, ExcerptLimit))
	sb.WriteString("\n\"\"\"\n\n")
	sb.WriteString("Job Description:\n\"\"\"\n")
	sb.WriteString(textx.Truncate(job, ExcerptLimit))
	sb.WriteString("\n\"\"\"\n\n")
	sb.WriteString("Evaluation Scores:\n")
	sb.WriteString("- Final Score: " + pct(b.FinalScore) + " / 100\n")
	sb.WriteString("- Keyword Match Score: " + pct(b.KeywordMatch) + "%\n")
	sb.WriteString("- Action Verb Score: " + pct(b.ActionVerb) + "%\n")
	sb.WriteString("- Quantified Experience Score: " + pct(b.QuantifiedExperience) + "%\n")
	sb.WriteString("- Formatting Score: " + pct(b.Formatting) + "%\n")
	sb.WriteString("- Section Coverage Score: " + pct(b.SectionCoverage) + "%\n\n")
	sb.WriteString("Instructions:\nPlease give:\n")
	sb.WriteString("1. A short summary of how well this resume fits the job.\n")
	sb.WriteString("2. 3 clear improvement suggestions (bullet points).\n")
	sb.WriteString("3. Optionally, a suggested new resume title.\n")
	return sb.String()
}
