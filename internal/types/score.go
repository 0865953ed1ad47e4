// Package types provides type definitions for structured data used throughout the resume-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// WeightSumTolerance is how far the weight sum may drift from 1
const WeightSumTolerance = 1e-6

// Weights controls how the component scores combine into the overall score
type Weights struct {
	Skills     float64 `json:"skills" mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
	Education  float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the 0.4 / 0.3 / 0.3 split
func DefaultWeights() Weights {
	return Weights{Skills: 0.4, Experience: 0.3, Education: 0.3}
}

// Sum returns the total of all three weights
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education
}

// Validate checks that every weight is non-negative and that they sum to 1.
func (w *Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}
	if sum := w.Sum(); math.Abs(sum-1) > WeightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// ScoreRecord is the result of scoring one resume against one job
type ScoreRecord struct {
	JobID           string   `json:"job_id,omitempty"`
	OverallScore    float64  `json:"overall_score"`
	SkillMatchScore float64  `json:"skill_match_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExtraSkills     []string `json:"extra_skills"`

	TotalYearsExperience    float64        `json:"total_years_experience"`
	CandidateEducationLevel EducationLevel `json:"candidate_education_level"`
}
