package parsing

import "strings"

// Section identifies one of the resume sections the extractor reads
type Section string

const (
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
)

// sectionKeywords locate the start of each section
var sectionKeywords = map[Section][]string{
	SectionEducation:  {"education", "academic", "university", "college", "degree"},
	SectionSkills:     {"skills", "technical skills", "core competencies", "expertise"},
	SectionExperience: {"experience", "employment", "work history", "professional background"},
}

// boundaryHeadings end a section. Keywords of the section being read are
// skipped, so a section never ends at its own heading.
var boundaryHeadings = []string{
	"education", "skills", "experience", "employment", "work history",
	"projects", "achievements", "certifications", "languages", "interests",
	"references", "publications", "awards",
}

// window is a half-open byte range [Start, End) of the original text
type window struct {
	Start   int
	End     int
	Keyword string // keyword that opened the window
}

// findSection locates a section by keyword heuristics. It starts at the
// earliest keyword occurrence and ends at the nearest heading of another
// section, or at the end of the text. Resumes with unusual section order
// can produce windows that include neighboring content.
func findSection(lower string, section Section) (window, bool) {
	keywords := sectionKeywords[section]

	start, keyword := -1, ""
	for _, k := range keywords {
		if pos := strings.Index(lower, k); pos >= 0 && (start < 0 || pos < start) {
			start, keyword = pos, k
		}
	}
	if start < 0 {
		return window{}, false
	}

	end := len(lower)
	for _, heading := range boundaryHeadings {
		if contains(keywords, heading) {
			continue
		}
		if pos := strings.Index(lower[start+1:], heading); pos >= 0 && start+1+pos < end {
			end = start + 1 + pos
		}
	}
	return window{Start: start, End: end, Keyword: keyword}, true
}

// asciiLower lowercases ASCII letters only, so byte offsets into the result
// are valid offsets into the input
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
