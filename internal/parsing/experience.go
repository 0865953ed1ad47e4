package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/types"
)

const maxTitleLength = 50

var experienceRangePattern = regexp.MustCompile(`(?i)(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:19|20)\d{2}|present|current)`)

// commonTitles are tried in order before falling back to the first line
var commonTitles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"Marketing Manager", "Project Manager", "Sales Representative",
	"Director", "Analyst", "Developer", "Designer", "Consultant",
}

func extractExperience(text, lower string, entities []nlp.Entity) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}

	win, ok := findSection(lower, SectionExperience)
	if !ok {
		return entries
	}

	section := text[win.Start:win.End]
	matches := experienceRangePattern.FindAllStringIndex(section, -1)

	// each job block starts at the line holding its date range; ranges on the
	// same line belong to one block
	type block struct {
		start     int
		dateRange string
	}
	var blocks []block
	for _, m := range matches {
		start := win.Start + lineStart(section, m[0])
		if len(blocks) > 0 && blocks[len(blocks)-1].start == start {
			continue
		}
		blocks = append(blocks, block{start: start, dateRange: section[m[0]:m[1]]})
	}

	for i, b := range blocks {
		end := win.End
		if i+1 < len(blocks) {
			end = blocks[i+1].start
		}
		blockText := text[b.start:end]

		entries = append(entries, types.ExperienceEntry{
			Title:       findJobTitle(blockText),
			Company:     findCompany(entities, b.start, end),
			DateRange:   b.dateRange,
			Description: strings.TrimSpace(blockText),
		})
	}
	return entries
}

// lineStart returns the offset of the first byte of the line containing i
func lineStart(s string, i int) int {
	return strings.LastIndexByte(s[:i], '\n') + 1
}

func findJobTitle(block string) string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(block), "\n")

	for _, scope := range []string{firstLine, block} {
		lower := strings.ToLower(scope)
		for _, title := range commonTitles {
			if strings.Contains(lower, strings.ToLower(title)) {
				return title
			}
		}
	}

	clean := experienceRangePattern.ReplaceAllString(firstLine, "")
	clean = strings.TrimLeft(clean, "0123456789 \t.,;:-–—|•*()")
	clean = strings.TrimRight(clean, " \t,;:-–—|(")
	if n := utf8.RuneCountInString(clean); n > 0 && n < maxTitleLength {
		return clean
	}
	return types.UnknownPosition
}

func findCompany(entities []nlp.Entity, start, end int) string {
	for _, e := range entities {
		if e.Label == nlp.LabelOrganization && e.Start >= start && e.Start < end {
			if name := strings.TrimSpace(e.Text); name != "" {
				return name
			}
		}
	}
	return types.UnknownCompany
}
