package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MinTextLength is the minimum number of characters a resume must have
	MinTextLength = 300
	// MinResumeIndicators is the minimum number of distinct resume terms
	MinResumeIndicators = 3
	// MinStructuralScore is the minimum number of structural signals
	MinStructuralScore = 2
)

var (
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern     = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	yearRangePattern = regexp.MustCompile(`(?i)(19|20)\d{2}\s*(-|–|to|—)\s*((19|20)\d{2}|present|current)`)
)

var (
	experienceSignals = []string{"experience", "employment", "work history", "professional background"}
	educationSignals  = []string{"education", "academic", "university", "college", "degree"}
	skillsSignals     = []string{"skills", "technical skills", "core competencies", "expertise"}
	contactSignals    = []string{"address", "phone", "email", "e-mail", "tel:"}
)

// Signals records which structural features were detected
type Signals struct {
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
	Contact    bool `json:"contact"`
	DateRange  bool `json:"date_range"`
}

// Score returns the number of signals present, from 0 to 5
func (s Signals) Score() int {
	score := 0
	for _, present := range []bool{s.Experience, s.Education, s.Skills, s.Contact, s.DateRange} {
		if present {
			score++
		}
	}
	return score
}

// Missing names the absent signals
func (s Signals) Missing() []string {
	var missing []string
	if !s.Experience {
		missing = append(missing, "experience")
	}
	if !s.Education {
		missing = append(missing, "education")
	}
	if !s.Skills {
		missing = append(missing, "skills")
	}
	if !s.Contact {
		missing = append(missing, "contact")
	}
	if !s.DateRange {
		missing = append(missing, "date range")
	}
	return missing
}

// Report is the full set of measurements behind a validation decision
type Report struct {
	Length              int      `json:"length"`
	ResumeIndicators    []string `json:"resume_indicators"`
	NonResumeIndicators []string `json:"non_resume_indicators"`
	Signals             Signals  `json:"signals"`
	StructuralScore     int      `json:"structural_score"`
}

// Inspect measures text without deciding whether it passes
func Inspect(text string) *Report {
	lower := strings.ToLower(text)
	signals := Signals{
		Experience: containsAny(lower, experienceSignals),
		Education:  containsAny(lower, educationSignals),
		Skills:     containsAny(lower, skillsSignals),
		Contact:    emailPattern.MatchString(text) || phonePattern.MatchString(text) || containsAny(lower, contactSignals),
		DateRange:  yearRangePattern.MatchString(text),
	}
	return &Report{
		Length:              utf8.RuneCountInString(text),
		ResumeIndicators:    matchIndicators(text, resumeMatchers),
		NonResumeIndicators: matchIndicators(text, nonResumeMatchers),
		Signals:             signals,
		StructuralScore:     signals.Score(),
	}
}

// Err returns the validation error for the report, or nil if the text passes
func (r *Report) Err() error {
	if r.Length < MinTextLength {
		return &TooShortError{Length: r.Length, Minimum: MinTextLength}
	}

	resumeCount := len(r.ResumeIndicators)
	nonResumeCount := len(r.NonResumeIndicators)
	if nonResumeCount >= resumeCount {
		return &NotAResumeError{
			Message:             fmt.Sprintf("found %d non-resume indicators and only %d resume indicators", nonResumeCount, resumeCount),
			ResumeIndicators:    r.ResumeIndicators,
			NonResumeIndicators: r.NonResumeIndicators,
		}
	}
	if resumeCount < MinResumeIndicators {
		return &NotAResumeError{
			Message:             fmt.Sprintf("found %d resume indicators, need at least %d", resumeCount, MinResumeIndicators),
			ResumeIndicators:    r.ResumeIndicators,
			NonResumeIndicators: r.NonResumeIndicators,
		}
	}

	if r.StructuralScore < MinStructuralScore {
		return &MissingSectionsError{
			Score:    r.StructuralScore,
			Required: MinStructuralScore,
			Missing:  r.Signals.Missing(),
		}
	}
	return nil
}

// ValidateResumeContent returns nil when text looks like a resume, or one of
// TooShortError, NotAResumeError or MissingSectionsError.
func ValidateResumeContent(text string) error {
	return Inspect(text).Err()
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
