package validation

import (
	"regexp"
	"strings"
)

// resumeIndicators are terms typical of resumes and CVs
var resumeIndicators = []string{
	"experience", "education", "skills", "work history", "employment",
	"job", "career", "professional", "certification", "resume",
	"cv", "curriculum vitae", "qualification", "objective", "summary",
	"contact", "reference", "achievement", "project", "volunteer",
	"internship", "degree", "university", "bachelor", "master",
	"responsibilities", "accomplishments", "linkedin", "languages", "profile",
}

// nonResumeIndicators are terms typical of invoices, contracts and academic papers.
// The list shares no term with resumeIndicators.
var nonResumeIndicators = []string{
	"invoice", "contract", "thesis", "payment terms", "net 30",
	"purchase order", "receipt", "subtotal", "amount due", "balance due",
	"bill to", "ship to", "tax id", "terms and conditions", "governing law",
	"hereinafter", "whereas", "lessee", "literature review", "bibliography",
	"chapter", "dissertation", "hypothesis", "table of contents", "appendix",
}

type indicator struct {
	term    string
	pattern *regexp.Regexp
}

var (
	resumeMatchers    = compileIndicators(resumeIndicators)
	nonResumeMatchers = compileIndicators(nonResumeIndicators)
)

// compileIndicators builds whole-word, case-insensitive matchers. Multi-word
// terms tolerate any whitespace between words and a plural suffix is allowed.
func compileIndicators(terms []string) []indicator {
	matchers := make([]indicator, 0, len(terms))
	for _, term := range terms {
		words := strings.Fields(term)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		pattern := `(?i)\b` + strings.Join(words, `\s+`) + `(?:s|es)?\b`
		matchers = append(matchers, indicator{term: term, pattern: regexp.MustCompile(pattern)})
	}
	return matchers
}

// matchIndicators returns the distinct terms found in text, in vocabulary order
func matchIndicators(text string, matchers []indicator) []string {
	found := []string{}
	for _, m := range matchers {
		if m.pattern.MatchString(text) {
			found = append(found, m.term)
		}
	}
	return found
}
