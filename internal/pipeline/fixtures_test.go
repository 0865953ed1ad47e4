package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"html"
	"strings"
	"sync"
	"testing"
	"unicode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/nlp"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe
San Francisco, CA

Summary
Backend engineer with a focus on distributed systems and developer tooling.

Experience
Software Engineer, Acme Corp 2019 - Present
Built payment services in Go and led the migration to Kubernetes.
Developer, Initech LLC 2016 - 2019
Maintained internal reporting tools written in Python.

Education
B.S. in Computer Science, Stanford University 2012 - 2016

Skills
Go, Python, SQL, Kubernetes, Docker
`

// buildDOCX writes a minimal word document with one paragraph per entry
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(html.EscapeString(p))
		body.WriteString("</w:t></w:r></w:p>")
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() +
			`</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sampleResumeDOCX(t *testing.T) []byte {
	t.Helper()
	return buildDOCX(t, strings.Split(strings.TrimSuffix(sampleResume, "\n"), "\n")...)
}

// fakeTagger tags fixed spans and splits tokens on whitespace
type fakeTagger struct {
	spans map[string]nlp.Label
}

func sampleTagger() *fakeTagger {
	return &fakeTagger{spans: map[string]nlp.Label{
		"Jane Doe":            nlp.LabelPerson,
		"San Francisco":       nlp.LabelLocation,
		"Acme Corp":           nlp.LabelOrganization,
		"Initech LLC":         nlp.LabelOrganization,
		"Stanford University": nlp.LabelOrganization,
	}}
}

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
	var entities []nlp.Entity
	for span, label := range f.spans {
		offset := 0
		for {
			idx := strings.Index(text[offset:], span)
			if idx < 0 {
				break
			}
			start := offset + idx
			entities = append(entities, nlp.Entity{Text: span, Label: label, Start: start, End: start + len(span)})
			offset = start + len(span)
		}
	}
	for i := 1; i < len(entities); i++ {
		for j := i; j > 0 && entities[j].Start < entities[j-1].Start; j-- {
			entities[j], entities[j-1] = entities[j-1], entities[j]
		}
	}
	return entities
}

type savedArtifact struct {
	step     string
	category string
	content  any
	text     string
}

// fakeStore records RunStore calls in memory
type fakeStore struct {
	mu        sync.Mutex
	createErr error
	saveErr   error
	runID     uuid.UUID
	input     db.RunInput
	artifacts []savedArtifact
	completed bool
	score     *float64
	status    string
	message   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{runID: uuid.New()}
}

func (s *fakeStore) CreateRun(_ context.Context, input db.RunInput) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.input = input
	s.status = db.RunStatusRunning
	return s.runID, nil
}

func (s *fakeStore) SaveArtifact(_ context.Context, _ uuid.UUID, step, category string, content any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.artifacts = append(s.artifacts, savedArtifact{step: step, category: category, content: content})
	return nil
}

func (s *fakeStore) SaveTextArtifact(_ context.Context, _ uuid.UUID, step, category, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.artifacts = append(s.artifacts, savedArtifact{step: step, category: category, text: text})
	return nil
}

func (s *fakeStore) CompleteRun(_ context.Context, _ uuid.UUID, overallScore *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = true
	s.status = db.RunStatusCompleted
	s.score = overallScore
	return nil
}

func (s *fakeStore) FailRun(_ context.Context, _ uuid.UUID, status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.message = message
	return nil
}

func (s *fakeStore) steps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		names = append(names, a.step)
	}
	return names
}
