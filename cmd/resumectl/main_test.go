package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-scorer/internal/config"
)

func testLoader() (config.Config, error) {
	return config.Config{
		AppEnv:        "test",
		TextExtractor: "pdf",
		FeedbackStore: "memory",
		LLMProvider:   "openrouter",
		MaxUploadMB:   10,
	}, nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(testLoader)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const resumeText = `Jane Roe
Experience
- Built Go APIs serving 5000 customers
- Reduced latency by 40%
Education
Master of Science
Skills
Go, Redis`

func TestScore_JSON(t *testing.T) {
	resume := writeFile(t, "cv.txt", resumeText)
	job := writeFile(t, "job.txt", "Go engineer with Redis experience. Master degree preferred.")

	out, err := execute(t, "score", "--resume", resume, "--job", job, "--json")
	require.NoError(t, err)

	var res scoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.EducationWarning)
	assert.Equal(t, 100.0, res.SectionCoverage)
	assert.Equal(t, 2, res.Bullets)
	assert.Equal(t, 2, res.QuantBullets)
	assert.Empty(t, res.Feedback)
}

func TestScore_Table(t *testing.T) {
	resume := writeFile(t, "cv.txt", resumeText)
	job := writeFile(t, "job.txt", "PhD in physics")

	out, err := execute(t, "score", "--resume", resume, "--job", job)
	require.NoError(t, err)
	assert.Contains(t, out, "Final score")
	assert.Contains(t, out, "does not meet the stated requirement")
}

func TestScore_FeedbackNeedsCredentials(t *testing.T) {
	resume := writeFile(t, "cv.txt", resumeText)
	job := writeFile(t, "job.txt", "Go engineer")

	_, err := execute(t, "score", "--resume", resume, "--job", job, "--feedback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestScore_MissingFlags(t *testing.T) {
	_, err := execute(t, "score")
	require.Error(t, err)
}

func TestWeights(t *testing.T) {
	out, err := execute(t, "weights")
	require.NoError(t, err)
	assert.Contains(t, out, "keyword_match")
	assert.Contains(t, out, "0.45")

	file := writeFile(t, "w.yaml", "weights:\n  keyword_match: 0.5\n  action_verb: 0.2\n  quantified_experience: 0.2\n  section_coverage: 0.05\n  formatting: 0.05\n")
	out, err = execute(t, "weights", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "0.50")
}
