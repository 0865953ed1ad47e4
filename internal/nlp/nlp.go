// Package nlp provides tokenization and named-entity tagging for resume text.
package nlp

import "sort"

// Label is the kind of a named entity
type Label string

const (
	LabelPerson       Label = "PERSON"
	LabelLocation     Label = "LOCATION"
	LabelOrganization Label = "ORGANIZATION"
)

// Token is a single word-like unit of text
type Token struct {
	Text  string
	Tag   string // part-of-speech tag, empty when tagging is disabled
	Start int
	End   int
}

// Entity is a labeled span of text. Start and End are byte offsets into the
// text that was tagged, so text[Start:End] == Text.
type Entity struct {
	Text  string
	Label Label
	Start int
	End   int
}

// Overlaps reports whether the entity intersects the half-open byte range [start, end)
func (e Entity) Overlaps(start, end int) bool {
	return e.Start < end && start < e.End
}

// Tagger tokenizes text and tags named entities. Implementations must be safe
// for concurrent use once constructed.
type Tagger interface {
	Tokenize(text string) []Token
	TagEntities(text string) []Entity
}

// Annotator is implemented by taggers that can produce tokens and entities
// from a single pass over the text.
type Annotator interface {
	Annotate(text string) ([]Token, []Entity)
}

// Annotate tokenizes and tags text, in one pass when t is an Annotator
func Annotate(t Tagger, text string) ([]Token, []Entity) {
	if a, ok := t.(Annotator); ok {
		return a.Annotate(text)
	}
	return t.Tokenize(text), t.TagEntities(text)
}

// FirstEntity returns the first entity with the given label in document order
func FirstEntity(entities []Entity, label Label) (Entity, bool) {
	for _, e := range entities {
		if e.Label == label {
			return e, true
		}
	}
	return Entity{}, false
}

// sortEntities orders entities by start offset, longer spans first on ties
func sortEntities(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Start != entities[j].Start {
			return entities[i].Start < entities[j].Start
		}
		return entities[i].End > entities[j].End
	})
}
