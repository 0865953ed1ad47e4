package parsing

import (
	"strings"
	"unicode/utf8"
)

const (
	minSkillLength = 2
	maxSkillLength = 50
	maxSkillWords  = 6
)

// skillDelimiters split a skills section into candidate items
var skillDelimiters = strings.NewReplacer(
	",", "\n", ";", "\n", "|", "\n",
	"•", "\n", "●", "\n", "■", "\n", "▪", "\n", "·", "\n",
)

func extractSkills(text, lower string) []string {
	skills := []string{}

	win, ok := findSection(lower, SectionSkills)
	if !ok {
		return skills
	}

	// drop the heading keyword and the colon after it
	body := text[win.Start+len(win.Keyword) : win.End]
	body = strings.TrimLeft(body, " \t:")

	seen := make(map[string]bool)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*–> \t")

		// "Languages: Go, Python" keeps only the items after the category
		if category, items, found := strings.Cut(line, ":"); found && len(strings.Fields(category)) <= 4 {
			line = items
		}

		for _, item := range strings.Split(skillDelimiters.Replace(line), "\n") {
			skill := cleanSkill(item)
			if !isSkill(skill) {
				continue
			}
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, skill)
		}
	}
	return skills
}

func cleanSkill(item string) string {
	item = strings.TrimSpace(item)
	item = strings.TrimLeft(item, "-*–> \t")
	item = strings.TrimRight(item, ". \t")
	return strings.Join(strings.Fields(item), " ")
}

func isSkill(skill string) bool {
	n := utf8.RuneCountInString(skill)
	if n < minSkillLength || n > maxSkillLength {
		return false
	}
	if len(strings.Fields(skill)) > maxSkillWords {
		return false
	}
	return !isHeading(strings.ToLower(skill))
}

// isHeading reports whether an item is a section heading rather than a skill
func isHeading(lower string) bool {
	if contains(boundaryHeadings, lower) {
		return true
	}
	for _, keywords := range sectionKeywords {
		if contains(keywords, lower) {
			return true
		}
	}
	return false
}
