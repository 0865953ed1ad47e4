package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

const warmUpText = "Jane Doe works at Acme Corp in San Francisco."

// ProseTagger is a Tagger backed by the prose NLP library
type ProseTagger struct {
	logger *zap.Logger
}

// NewProseTagger loads the prose models by tagging a short sample, so a broken
// installation fails at startup rather than on the first resume.
func NewProseTagger(logger *zap.Logger) (*ProseTagger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := prose.NewDocument(warmUpText); err != nil {
		return nil, fmt.Errorf("failed to load NLP model: %w", err)
	}
	return &ProseTagger{logger: logger}, nil
}

// Tokenize splits text into tokens with part-of-speech tags
func (p *ProseTagger) Tokenize(text string) []Token {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		p.logger.Warn("tokenization failed", zap.Error(err))
		return nil
	}
	return mapTokens(text, doc.Tokens())
}

// TagEntities returns person, location and organization entities in document order
func (p *ProseTagger) TagEntities(text string) []Entity {
	var model []Entity
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		p.logger.Warn("entity tagging failed, falling back to rules", zap.Error(err))
	} else {
		model = p.convert(text, doc.Entities())
	}
	return mergeEntities(model, ruleOrganizations(text))
}

// Annotate builds one prose document and returns both its tokens and its entities
func (p *ProseTagger) Annotate(text string) ([]Token, []Entity) {
	rules := ruleOrganizations(text)
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		p.logger.Warn("annotation failed, falling back to rules", zap.Error(err))
		return nil, mergeEntities(nil, rules)
	}
	return mapTokens(text, doc.Tokens()), mergeEntities(p.convert(text, doc.Entities()), rules)
}

// mapTokens maps prose tokens back onto byte offsets in text
func mapTokens(text string, proseTokens []prose.Token) []Token {
	result := make([]Token, 0, len(proseTokens))
	cursor := 0
	for _, tok := range proseTokens {
		start, end, ok := locate(text, tok.Text, cursor)
		if !ok {
			continue
		}
		cursor = end
		result = append(result, Token{Text: tok.Text, Tag: tok.Tag, Start: start, End: end})
	}
	return result
}

func (p *ProseTagger) convert(text string, ents []prose.Entity) []Entity {
	entities := make([]Entity, 0, len(ents))
	cursor := 0
	for _, ent := range ents {
		label, ok := mapLabel(ent.Label)
		if !ok {
			continue
		}
		start, end, found := locate(text, ent.Text, cursor)
		if !found {
			p.logger.Debug("entity not found in source text", zap.String("entity", ent.Text))
			continue
		}
		cursor = start + 1
		entities = append(entities, Entity{Text: text[start:end], Label: label, Start: start, End: end})
	}
	return entities
}

func mapLabel(label string) (Label, bool) {
	switch strings.ToUpper(label) {
	case "PERSON", "PER":
		return LabelPerson, true
	case "GPE", "LOC", "LOCATION":
		return LabelLocation, true
	case "ORG", "ORGANIZATION":
		return LabelOrganization, true
	default:
		return "", false
	}
}

// locate finds needle in text at or after cursor, falling back to a search
// from the start when the library reorders its output.
func locate(text, needle string, cursor int) (int, int, bool) {
	if needle == "" {
		return 0, 0, false
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	if idx := strings.Index(text[cursor:], needle); idx >= 0 {
		start := cursor + idx
		return start, start + len(needle), true
	}
	if idx := strings.Index(text, needle); idx >= 0 {
		return idx, idx + len(needle), true
	}
	return 0, 0, false
}
