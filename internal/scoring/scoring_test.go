package scoring_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
)

const sampleResume = `Jane Doe
Experience
- Led a team of 5 engineers to increase throughput by 20%
- Built a Go service handling 10000 requests per second
- Responsible for on-call rotation
Education
B.S. Computer Science
Skills
Go, Kubernetes, PostgreSQL`

func TestCosineTFIDF(t *testing.T) {
	t.Parallel()

	t.Run("identical text scores one", func(t *testing.T) {
		t.Parallel()
		text := "Senior Go engineer with Kubernetes and PostgreSQL experience"
		assert.InDelta(t, 1.0, scoring.CosineTFIDF(text, text), 1e-9)
	})

	t.Run("disjoint vocabulary scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, scoring.CosineTFIDF("golang kubernetes", "watercolor painting"))
	})

	t.Run("empty or stop words only scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, scoring.CosineTFIDF("", "golang"))
		assert.Equal(t, 0.0, scoring.CosineTFIDF("the and of", "golang"))
	})

	t.Run("partial overlap is strictly between bounds", func(t *testing.T) {
		t.Parallel()
		got := scoring.CosineTFIDF("golang kubernetes postgres", "golang react")
		assert.Greater(t, got, 0.0)
		assert.Less(t, got, 1.0)
	})

	t.Run("case and single characters are ignored", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, scoring.CosineTFIDF("GoLang a b c", "golang"), 1e-9)
	})

	t.Run("combining marks split tokens", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, scoring.CosineTFIDF("cafe\u0301 barista", "cafe barista"), 1e-9)
		assert.Equal(t, 0.0, scoring.CosineTFIDF("caf\u00e9", "cafe"))
	})
}

func TestBullets(t *testing.T) {
	t.Parallel()

	text := "Header\n  - dash item\n• dot item\n* star item\nplain line\n\n"
	assert.Equal(t, []string{"- dash item", "• dot item", "* star item"}, scoring.Bullets(text))
	assert.Empty(t, scoring.Bullets("no bullets here\nat all"))
}

func TestCountActionVerbs(t *testing.T) {
	t.Parallel()

	matched, total := scoring.CountActionVerbs("- Led a team of 5 engineers to increase throughput by 20%")
	assert.Equal(t, 1, matched)
	assert.Equal(t, 1, total)

	matched, total = scoring.CountActionVerbs(sampleResume)
	assert.Equal(t, 2, matched)
	assert.Equal(t, 3, total)

	matched, total = scoring.CountActionVerbs("Summary\nNo bullets at all")
	assert.Zero(t, matched)
	assert.Zero(t, total)

	assert.True(t, scoring.IsActionVerb("Managed"))
	assert.False(t, scoring.IsActionVerb("responsible"))
}

func TestCountQuantified(t *testing.T) {
	t.Parallel()

	matched, total := scoring.CountQuantified("- Led a team of 5 engineers to increase throughput by 20%")
	assert.Equal(t, 1, matched)
	assert.Equal(t, 1, total)

	matched, total = scoring.CountQuantified("- Improved reliability\n- Cut costs by 30%")
	assert.Equal(t, 1, matched)
	assert.Equal(t, 2, total)
}

func TestBulletScorersWithoutBullets(t *testing.T) {
	t.Parallel()

	in := scoring.Input{Resume: "Plain paragraph resume\nwith two lines"}
	assert.Equal(t, 0.0, scoring.ActionVerbs{}.Score(in).Value)
	assert.Equal(t, 0.0, scoring.QuantifiedExperience{}.Score(in).Value)
}

func TestSectionCoverage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		resume string
		want   float64
	}{
		{"all sections any case", "EDUCATION\nWork Experience\nskills", 1.0},
		{"two of three", "Experience\nSkills", 2.0 / 3.0},
		{"none", "Summary\nProjects", 0},
		{"synonyms do not count", "Employment History\nQualifications", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := scoring.SectionCoverage{}.Score(scoring.Input{Resume: tc.resume}).Value
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	t.Run("empty text gets full credit", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, scoring.Formatting{}.Score(scoring.Input{}).Value)
		assert.Equal(t, 1.0, scoring.Formatting{}.Score(scoring.Input{Resume: "\n  \n"}).Value)
	})

	t.Run("blend of capitalization and length", func(t *testing.T) {
		t.Parallel()
		long := "A" + strings.Repeat("x", scoring.MaxLineLength)
		text := "Title\nlowercase line\n" + long + "\nAnother"
		capRatio, lenRatio := scoring.FormattingRatios(text)
		assert.InDelta(t, 0.75, capRatio, 1e-9)
		assert.InDelta(t, 0.75, lenRatio, 1e-9)
		assert.InDelta(t, 0.75, scoring.Formatting{}.Score(scoring.Input{Resume: text}).Value, 1e-9)
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		t.Parallel()
		line := "É" + strings.Repeat("é", scoring.MaxLineLength-1)
		_, lenRatio := scoring.FormattingRatios(line)
		assert.Equal(t, 1.0, lenRatio)
	})
}

func TestValidateEducation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		resume string
		job    string
		want   bool
		level  string
	}{
		{"no requirement", "High school", "Great attitude required", true, ""},
		{"master required and held", "M.S. in Computer Science", "Master's degree required", true, "master"},
		{"master required bachelor held", "B.S. in Computer Science", "Master's degree required", false, "master"},
		{"bachelor tier wins first", "Master of Science", "Bachelor or Master degree", false, "bachelor"},
		{"doctorate via doctor", "Doctor of Philosophy", "PhD preferred", true, "doctorate"},
		{"doctorate keyword in job", "Ph.D. in physics", "Doctorate in a related field", true, "doctorate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, level := scoring.ValidateEducation(tc.resume, tc.job)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.level, level)
		})
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 66.67, scoring.Percent(2.0/3.0))
	assert.Equal(t, 100.0, scoring.Percent(1))
	assert.Equal(t, 0.0, scoring.Percent(0))
	assert.Equal(t, 0.0, scoring.Ratio(3, 0))
}

func TestEveryScorerStaysInRange(t *testing.T) {
	t.Parallel()

	inputs := []scoring.Input{
		{},
		{Resume: sampleResume, Job: "Go engineer, Bachelor degree, Kubernetes"},
		{Resume: strings.Repeat("- 100% 200$ ***\n", 50), Job: "***"},
		{Resume: "  \r\n", Job: "\x00"},
	}
	for _, in := range inputs {
		var b domain.ScoreBreakdown
		for _, s := range scoring.DefaultScorers() {
			s.Record(&b, s.Score(in))
		}
		for name, v := range map[string]float64{
			"keyword":    b.KeywordMatch,
			"verb":       b.ActionVerb,
			"quantified": b.QuantifiedExperience,
			"section":    b.SectionCoverage,
			"formatting": b.Formatting,
		} {
			require.GreaterOrEqual(t, v, 0.0, name)
			require.LessOrEqual(t, v, 1.0, name)
		}
	}
}
