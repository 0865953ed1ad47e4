// Package validation rejects documents that are unlikely to be resumes before entity extraction runs.
package validation

import (
	"fmt"
	"strings"
)

// TooShortError is returned when the text has fewer characters than MinTextLength
type TooShortError struct {
	Length  int
	Minimum int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("document too short: %d characters, need at least %d", e.Length, e.Minimum)
}

// NotAResumeError is returned when the vocabulary does not look like a resume
type NotAResumeError struct {
	Message             string
	ResumeIndicators    []string
	NonResumeIndicators []string
}

func (e *NotAResumeError) Error() string {
	return fmt.Sprintf("document does not appear to be a resume: %s", e.Message)
}

// MissingSectionsError is returned when too few structural signals are present
type MissingSectionsError struct {
	Score    int
	Required int
	Missing  []string
}

func (e *MissingSectionsError) Error() string {
	return fmt.Sprintf("document is missing typical resume sections: structural score %d of %d required (missing: %s)",
		e.Score, e.Required, strings.Join(e.Missing, ", "))
}
