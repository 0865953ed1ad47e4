package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	contextBefore = 100
	contextAfter  = 150
)

var (
	degreePattern = regexp.MustCompile(
		`\b(?:Bachelor(?:'s|’s)?\b|Master(?:'s|’s)?\b|Associate(?:'s)?\b|Doctorate\b|Ph\.D\.?|PhD\b|High School\b|` +
			`B\.S\.|M\.S\.|B\.A\.|M\.A\.|(?:MBA|BSc|MSc|BA|MA)\b)`,
	)
	educationRangePattern = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|present|current)\b`)
	yearPattern           = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

var institutionKeywords = []string{"university", "college", "institute", "school", "academy", "polytechnic"}

// fieldsOfStudy are checked in order, so specific fields precede the broader ones they contain
var fieldsOfStudy = []string{
	"computer science", "software engineering", "electrical engineering", "mechanical engineering",
	"data science", "information technology", "business administration",
	"engineering", "business", "marketing", "finance", "biology", "chemistry", "physics",
	"mathematics", "statistics", "economics", "psychology", "sociology", "history",
	"english", "communications",
}

var titleCaser = cases.Title(language.English)

func extractEducation(text, lower string, entities []nlp.Entity) []types.EducationEntry {
	entries := []types.EducationEntry{}

	win, ok := findSection(lower, SectionEducation)
	if !ok {
		return entries
	}

	section := text[win.Start:win.End]
	matches := degreePattern.FindAllStringIndex(section, -1)
	for i, m := range matches {
		degStart, degEnd := win.Start+m[0], win.Start+m[1]

		ctxStart := runeStartBefore(text, max(win.Start, degStart-contextBefore))
		ctxEnd := runeStartAfter(text, min(win.End, degEnd+contextAfter))

		// the part of the context belonging to this degree and not the next one
		ownEnd := ctxEnd
		if i+1 < len(matches) && win.Start+matches[i+1][0] < ownEnd {
			ownEnd = win.Start + matches[i+1][0]
		}

		entries = append(entries, types.EducationEntry{
			Degree:       strings.TrimSpace(text[degStart:degEnd]),
			Institution:  findInstitution(entities, ctxStart, ctxEnd, degStart),
			DateRange:    findEducationDates(text[degStart:ownEnd], text[ctxStart:ctxEnd]),
			FieldOfStudy: findFieldOfStudy(lower[degStart:ownEnd], lower[ctxStart:ctxEnd]),
		})
	}
	return entries
}

// findInstitution returns the organization entity nearest to the degree that
// names an educational institution
func findInstitution(entities []nlp.Entity, ctxStart, ctxEnd, degStart int) string {
	best, bestDist := "", -1
	for _, e := range entities {
		if e.Label != nlp.LabelOrganization || !e.Overlaps(ctxStart, ctxEnd) {
			continue
		}
		if !containsAnyFold(e.Text, institutionKeywords) {
			continue
		}
		dist := e.Start - degStart
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = strings.TrimSpace(e.Text), dist
		}
	}
	if best == "" {
		return types.UnknownInstitution
	}
	return best
}

// findEducationDates prefers an explicit range, then the span of years mentioned
func findEducationDates(own, context string) string {
	for _, s := range []string{own, context} {
		if m := educationRangePattern.FindStringSubmatch(s); m != nil {
			return fmt.Sprintf("%s - %s", m[1], m[2])
		}
	}

	years := yearPattern.FindAllString(context, -1)
	if len(years) == 0 {
		return ""
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		if yearValue(y) < yearValue(lo) {
			lo = y
		}
		if yearValue(y) > yearValue(hi) {
			hi = y
		}
	}
	if lo == hi {
		return lo
	}
	return lo + " - " + hi
}

func findFieldOfStudy(own, context string) string {
	for _, s := range []string{own, context} {
		for _, field := range fieldsOfStudy {
			if strings.Contains(s, field) {
				return titleCaser.String(field)
			}
		}
	}
	return types.UnknownField
}

func yearValue(y string) int {
	n, _ := strconv.Atoi(y)
	return n
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// runeStartBefore moves i back to the start of the rune containing it
func runeStartBefore(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// runeStartAfter moves i forward to the next rune start
func runeStartAfter(text string, i int) int {
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}
