// Package types provides type definitions for structured data used throughout the resume-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Placeholder values used when a field could not be extracted
const (
	UnknownName        = "Unknown"
	UnknownInstitution = "Unknown Institution"
	UnknownField       = "Not Specified"
	UnknownPosition    = "Unknown Position"
	UnknownCompany     = "Unknown Company"
)

// ResumeRecord is the structured form of a resume extracted from plain text
type ResumeRecord struct {
	Name        string            `json:"name"`
	ContactInfo ContactInfo       `json:"contact_info"`
	Education   []EducationEntry  `json:"education"`
	Skills      []string          `json:"skills"`
	Experience  []ExperienceEntry `json:"experience"`
	RawText     string            `json:"raw_text"`
}

// ContactInfo holds optional contact details; empty strings mean not found
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Location string `json:"location,omitempty"`
}

// EducationEntry represents one degree mention in the education section
type EducationEntry struct {
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	DateRange    string `json:"date_range,omitempty"` // empty when no year was found
	FieldOfStudy string `json:"field_of_study"`
}

// ExperienceEntry represents one job block in the experience section
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	DateRange   string `json:"date_range"`
	Description string `json:"description"`
}

// HighestEducationLevel returns the highest ordinal level among the education entries
func (r *ResumeRecord) HighestEducationLevel() EducationLevel {
	highest := EducationNone
	for _, edu := range r.Education {
		if level := ParseEducationLevel(edu.Degree); level > highest {
			highest = level
		}
	}
	return highest
}
