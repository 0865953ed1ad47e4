package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-checker/internal/nlp"
)

type taggedSpan struct {
	text  string
	label nlp.Label
}

// fakeTagger tags every occurrence of a fixed list of spans and splits tokens on whitespace
type fakeTagger struct {
	spans []taggedSpan
	calls int
}

func newFakeTagger(spans ...taggedSpan) *fakeTagger {
	return &fakeTagger{spans: spans}
}

func person(text string) taggedSpan   { return taggedSpan{text, nlp.LabelPerson} }
func location(text string) taggedSpan { return taggedSpan{text, nlp.LabelLocation} }
func org(text string) taggedSpan      { return taggedSpan{text, nlp.LabelOrganization} }

func (f *fakeTagger) Tokenize(text string) []nlp.Token {
	var tokens []nlp.Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, nlp.Token{Text: text[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, nlp.Token{Text: text[start:], Start: start, End: len(text)})
	}
	return tokens
}

func (f *fakeTagger) TagEntities(text string) []nlp.Entity {
	f.calls++
	var entities []nlp.Entity
	for _, span := range f.spans {
		offset := 0
		for {
			idx := strings.Index(text[offset:], span.text)
			if idx < 0 {
				break
			}
			start := offset + idx
			entities = append(entities, nlp.Entity{Text: span.text, Label: span.label, Start: start, End: start + len(span.text)})
			offset = start + len(span.text)
		}
	}
	// document order
	for i := 1; i < len(entities); i++ {
		for j := i; j > 0 && entities[j].Start < entities[j-1].Start; j-- {
			entities[j], entities[j-1] = entities[j-1], entities[j]
		}
	}
	return entities
}

// singlePassTagger is a fakeTagger that also implements nlp.Annotator
type singlePassTagger struct {
	*fakeTagger
	annotations int
}

func (s *singlePassTagger) Annotate(text string) ([]nlp.Token, []nlp.Entity) {
	s.annotations++
	return s.Tokenize(text), s.TagEntities(text)
}
