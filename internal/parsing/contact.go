package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/types"
)

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	emailTokenPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern      = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern   = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
)

func extractContact(text, lower string, tokens []nlp.Token, entities []nlp.Entity) types.ContactInfo {
	var info types.ContactInfo

	for _, tok := range tokens {
		if emailTokenPattern.MatchString(tok.Text) {
			info.Email = tok.Text
			break
		}
	}
	if info.Email == "" {
		info.Email = emailPattern.FindString(text)
	}

	info.Phone = strings.TrimSpace(phonePattern.FindString(text))

	if m := linkedInPattern.FindString(lower); m != "" {
		info.LinkedIn = "https://www." + m
	}

	if loc, ok := nlp.FirstEntity(entities, nlp.LabelLocation); ok {
		info.Location = strings.TrimSpace(loc.Text)
	}
	return info
}
