// Package ranking scores structured resumes against job requirements.
package ranking

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-checker/internal/types"
)

// MaxYearsPerPosition caps the span credited to a single experience entry
const MaxYearsPerPosition = 10.0

var dateRangePattern = regexp.MustCompile(`(?i)(\d{4})\s*(-|to|–|—)\s*(\d{4}|present|current)`)

// skillSets splits the required skills into matching and missing, and collects
// resume skills the job did not ask for. Comparison is case-insensitive.
// Matching and missing keep the job's casing; extra keeps the resume's casing.
func skillSets(resumeSkills, requiredSkills []string) (matching, missing, extra []string) {
	have := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		if key := skillKey(skill); key != "" {
			have[key] = true
		}
	}

	matching = make([]string, 0)
	missing = make([]string, 0)
	required := make(map[string]bool, len(requiredSkills))
	for _, skill := range requiredSkills {
		key := skillKey(skill)
		if key == "" || required[key] {
			continue
		}
		required[key] = true

		if have[key] {
			matching = append(matching, strings.TrimSpace(skill))
		} else {
			missing = append(missing, strings.TrimSpace(skill))
		}
	}

	extra = make([]string, 0)
	seen := make(map[string]bool)
	for _, skill := range resumeSkills {
		key := skillKey(skill)
		if key == "" || required[key] || seen[key] {
			continue
		}
		seen[key] = true
		extra = append(extra, strings.TrimSpace(skill))
	}

	sortSkills(matching)
	sortSkills(missing)
	sortSkills(extra)

	return matching, missing, extra
}

func skillKey(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// computeSkillMatchScore returns the share of required skills the resume covers.
func computeSkillMatchScore(matching, missing []string) float64 {
	required := len(matching) + len(missing)
	if required == 0 {
		return 1.0
	}
	return float64(len(matching)) / float64(required)
}

// yearsInRange returns the span in years of the first year range in dateRange.
// "present" and "current" resolve to currentYear. The span is capped at
// MaxYearsPerPosition and never negative; unparseable ranges count as zero.
func yearsInRange(dateRange string, currentYear int) float64 {
	match := dateRangePattern.FindStringSubmatch(dateRange)
	if match == nil {
		return 0
	}

	start, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	end := currentYear
	switch strings.ToLower(match[3]) {
	case "present", "current":
	default:
		end, err = strconv.Atoi(match[3])
		if err != nil {
			return 0
		}
	}

	years := float64(end - start)
	return max(0, min(years, MaxYearsPerPosition))
}

// totalYearsExperience sums the spans of every entry. Overlapping ranges are
// counted once per entry.
func totalYearsExperience(experience []types.ExperienceEntry, now time.Time) float64 {
	total := 0.0
	for _, entry := range experience {
		total += yearsInRange(entry.DateRange, now.Year())
	}
	return total
}

// computeExperienceScore compares total years against the required minimum.
func computeExperienceScore(totalYears, minYears float64) float64 {
	if minYears <= 0 {
		return 1.0
	}
	return clamp(totalYears, 0, minYears) / minYears
}

// computeEducationScore compares the candidate's highest level against the requirement.
// A job with no requirement scores 1.0; a candidate with no detectable degree scores 0.0.
func computeEducationScore(candidate, required types.EducationLevel) float64 {
	if required <= types.EducationNone {
		return 1.0
	}
	if candidate <= types.EducationNone {
		return 0.0
	}
	return min(1.0, float64(candidate)/float64(required))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
