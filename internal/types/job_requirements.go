// Package types provides type definitions for structured data used throughout the resume-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// JobRequirements describes what a job posting asks for. It is supplied by an
// external provider and treated as read-only.
type JobRequirements struct {
	ID                 string         `json:"id" validate:"required"`
	Title              string         `json:"title" validate:"required"`
	Description        string         `json:"description,omitempty"`
	RequiredSkills     []string       `json:"required_skills" validate:"dive,required"`
	MinYearsExperience float64        `json:"min_years_experience" validate:"gte=0,lte=60"`
	MinEducationLevel  EducationLevel `json:"min_education" validate:"gte=0,lte=5"`
}

// Validate validates the JobRequirements using the validator.
func (j *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// UnmarshalJSON also accepts a numeric min_education, which the text form cannot express.
func (j *JobRequirements) UnmarshalJSON(data []byte) error {
	type alias JobRequirements
	aux := struct {
		*alias
		MinEducation json.RawMessage `json:"min_education"`
	}{alias: (*alias)(j)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.MinEducation) == 0 || string(aux.MinEducation) == "null" {
		j.MinEducationLevel = EducationNone
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.MinEducation, &text); err != nil {
		// not a string, treat it as a number literal
		text = string(aux.MinEducation)
	}
	return j.MinEducationLevel.UnmarshalText([]byte(text))
}
