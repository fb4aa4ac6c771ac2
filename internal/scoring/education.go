package scoring

import (
	"strings"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// DegreeTier pairs the markers that signal a requirement in a job description
// with the markers that satisfy it in a resume.
type DegreeTier struct {
	Level     string
	JobMarks  []string
	ResumeHas []string
}

// DegreeTiers are checked in priority order; the first tier the job mentions wins.
var DegreeTiers = []DegreeTier{
	{Level: "bachelor", JobMarks: []string{"bachelor", "b.s."}, ResumeHas: []string{"bachelor", "b.s."}},
	{Level: "master", JobMarks: []string{"master", "m.s."}, ResumeHas: []string{"master", "m.s."}},
	{Level: "doctorate", JobMarks: []string{"ph.d", "phd", "doctorate"}, ResumeHas: []string{"ph.d", "phd", "doctor"}},
}

// EducationMatch validates the resume against the degree the job asks for.
// A job without a degree requirement always passes.
type EducationMatch struct{}

func (EducationMatch) Name() string { return NameEducationMatch }

func (EducationMatch) Score(in Input) Signal {
	ok, _ := ValidateEducation(in.Resume, in.Job)
	v := 0.0
	if ok {
		v = 1
	}
	return Signal{Pass: ok, Value: v}
}

func (EducationMatch) Record(b *domain.ScoreBreakdown, s Signal) { b.EducationMatch = s.Pass }

// ValidateEducation returns whether the requirement is met and the tier that
// was required ("" when the job names none).
func ValidateEducation(resume, job string) (bool, string) {
	jobLower := strings.ToLower(job)
	resumeLower := strings.ToLower(resume)
	for _, tier := range DegreeTiers {
		if !containsAny(jobLower, tier.JobMarks) {
			continue
		}
		return containsAny(resumeLower, tier.ResumeHas), tier.Level
	}
	return true, ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
