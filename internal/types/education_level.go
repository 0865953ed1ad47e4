// Package types provides type definitions for structured data used throughout the resume-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// EducationLevel is an ordinal ranking of degrees used for numeric comparison
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationHighSchool
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationPhD
)

var educationLevelNames = map[EducationLevel]string{
	EducationNone:       "None",
	EducationHighSchool: "High School",
	EducationAssociate:  "Associate",
	EducationBachelor:   "Bachelor",
	EducationMaster:     "Master",
	EducationPhD:        "PhD",
}

// levelMarkers are checked from the lowest level up, so a requirement such as
// "Bachelor's or Master's degree" resolves to its minimum.
var levelMarkers = []struct {
	level     EducationLevel
	substrs   []string
	wholeWord []string
}{
	{EducationHighSchool, []string{"high school", "secondary school"}, []string{"ged"}},
	{EducationAssociate, []string{"associate"}, []string{"aas"}},
	{EducationBachelor, []string{"bachelor", "bsc", "beng"}, []string{"bs", "ba"}},
	{EducationMaster, []string{"master", "mba", "msc", "meng"}, []string{"ms", "ma"}},
	{EducationPhD, []string{"phd", "doctor"}, []string{"dphil"}},
}

// String returns the display name of the level
func (l EducationLevel) String() string {
	if name, ok := educationLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("EducationLevel(%d)", int(l))
}

// Valid reports whether the level is one of the defined ordinals
func (l EducationLevel) Valid() bool {
	return l >= EducationNone && l <= EducationPhD
}

// ParseEducationLevel maps free text such as "Master's degree", "B.S." or "PhD"
// to an ordinal level. Unrecognized text yields EducationNone.
func ParseEducationLevel(text string) EducationLevel {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return EducationNone
	}
	normalized = strings.ReplaceAll(normalized, ".", "")
	normalized = strings.ReplaceAll(normalized, "’", "'")

	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	for _, marker := range levelMarkers {
		for _, s := range marker.substrs {
			if strings.Contains(normalized, s) {
				return marker.level
			}
		}
		for _, w := range marker.wholeWord {
			if _, ok := wordSet[w]; ok {
				return marker.level
			}
		}
	}
	return EducationNone
}

// MarshalText encodes the level as its display name
func (l EducationLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid education level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText accepts either an ordinal number or free text describing a degree
func (l *EducationLevel) UnmarshalText(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if n, err := strconv.Atoi(raw); err == nil {
		level := EducationLevel(n)
		if !level.Valid() {
			return fmt.Errorf("education level %d out of range 0-%d", n, int(EducationPhD))
		}
		*l = level
		return nil
	}
	*l = ParseEducationLevel(raw)
	return nil
}
