// Package parsing turns validated resume text into a structured ResumeRecord
// using an injected NLP tagger plus keyword and regex heuristics.
package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-checker/internal/logger"
	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/types"
	"go.uber.org/zap"
)

const maxNameLineLength = 40

// Extractor extracts entities from resume text. It holds no mutable state
// and is safe for concurrent use if its Tagger is.
type Extractor struct {
	tagger nlp.Tagger
	logger *zap.Logger
}

// NewExtractor creates an Extractor around the given tagger
func NewExtractor(tagger nlp.Tagger, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{tagger: tagger, logger: log}
}

// Extract builds a ResumeRecord from text. It never fails: fields that cannot
// be found are left empty or set to their placeholder values.
func (e *Extractor) Extract(text string) *types.ResumeRecord {
	tokens, entities := nlp.Annotate(e.tagger, text)
	lower := asciiLower(text)

	record := &types.ResumeRecord{
		Name:        extractName(text, entities),
		ContactInfo: extractContact(text, lower, tokens, entities),
		Education:   extractEducation(text, lower, entities),
		Skills:      extractSkills(text, lower),
		Experience:  extractExperience(text, lower, entities),
		RawText:     text,
	}

	e.logger.Debug("extracted resume entities",
		zap.String("name", record.Name),
		zap.Int("entities", len(entities)),
		zap.Int("education", len(record.Education)),
		zap.Int("skills", len(record.Skills)),
		zap.Int("experience", len(record.Experience)),
		zap.String("text", logger.TruncateForLog(text, 120)),
	)
	return record
}

// extractName prefers the first person entity, then a short first line
func extractName(text string, entities []nlp.Entity) string {
	if person, ok := nlp.FirstEntity(entities, nlp.LabelPerson); ok {
		if name := strings.TrimSpace(person.Text); name != "" {
			return name
		}
	}

	firstLine, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	firstLine = strings.TrimSpace(firstLine)
	if firstLine != "" && utf8.RuneCountInString(firstLine) < maxNameLineLength {
		return firstLine
	}
	return types.UnknownName
}
