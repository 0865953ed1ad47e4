package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/jonathan/resume-checker/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBox_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.True(t, utf8.ValidString(line))
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintValidationReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationReport(&validation.Report{
		Length:           1200,
		ResumeIndicators: []string{"experience", "education", "skills"},
		Signals:          validation.Signals{Experience: true, Education: true},
		StructuralScore:  2,
	})
	output := buf.String()

	assert.Contains(t, output, "CONTENT CHECK")
	assert.Contains(t, output, "1200 characters")
	assert.Contains(t, output, "2/5")
	assert.Contains(t, output, "Missing:")
}

func TestPrintValidationReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidationReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResumeRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.ResumeRecord{
		Name: "Jane Doe",
		ContactInfo: types.ContactInfo{
			Email:    "jane@example.com",
			LinkedIn: "https://www.linkedin.com/in/janedoe",
		},
		Education: []types.EducationEntry{
			{Degree: "Master of Science", Institution: "Stanford University", FieldOfStudy: "Computer Science", DateRange: "2014 - 2016"},
		},
		Skills: []string{"Go", "Python"},
		Experience: []types.ExperienceEntry{
			{Title: "Software Engineer", Company: "Acme Inc", DateRange: "2016 - Present"},
		},
	}

	p.PrintResumeRecord(record)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "Stanford University")
	assert.Contains(t, output, "2014 - 2016")
	assert.Contains(t, output, "Software Engineer at Acme Inc")
	assert.Contains(t, output, "Skills (2): Go, Python")
	assert.NotContains(t, output, "Phone:")
}

func TestPrintResumeRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeRecord(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.ScoreRecord{
		JobID:                   "job1",
		OverallScore:            0.8,
		SkillMatchScore:         0.5,
		ExperienceScore:         1,
		EducationScore:          0.75,
		MatchingSkills:          []string{"Python"},
		MissingSkills:           []string{"Go"},
		ExtraSkills:             []string{"A", "B", "C", "D", "E", "F", "G"},
		TotalYearsExperience:    5,
		CandidateEducationLevel: types.EducationBachelor,
	}
	job := &types.JobRequirements{ID: "job1", Title: "Senior Software Engineer"}

	p.PrintScoreRecord(record, job)
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE: Senior Software Engineer (job1)")
	assert.Contains(t, output, " 80%")
	assert.Contains(t, output, " 50%")
	assert.Contains(t, output, "5.0 years")
	assert.Contains(t, output, "Bachelor")
	assert.Contains(t, output, "• Python")
	assert.Contains(t, output, "• Go")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintScoreRecord_EmptyLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreRecord(&types.ScoreRecord{JobID: "job9", OverallScore: 1}, nil)
	output := buf.String()

	assert.Contains(t, output, "MATCH SCORE: job9")
	assert.Contains(t, output, "Matching skills: (none)")
}

func TestPrintJobRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobRanking([]types.ScoreRecord{
		{JobID: "job2", OverallScore: 0.9},
		{JobID: "job1", OverallScore: 0.4},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB RANKING")
	assert.Contains(t, output, "Jobs scored: 2")
	assert.Less(t, strings.Index(output, "job2"), strings.Index(output, "job1"))
}

func TestPrintJobRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobRanking(nil)
	assert.Empty(t, buf.String())
}

func TestPrintJobs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobs([]types.JobRequirements{
		{ID: "job1", Title: "Engineer", RequiredSkills: []string{"go", "sql"}, MinYearsExperience: 2.5, MinEducationLevel: types.EducationMaster},
	})
	output := buf.String()

	assert.Contains(t, output, "job1\tEngineer")
	assert.Contains(t, output, "go, sql")
	assert.Contains(t, output, "2.5+ years")
	assert.Contains(t, output, "Master")
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	score := 0.8
	created := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	p.PrintRuns([]db.Run{
		{ID: uuid.New(), Filename: "resume.pdf", Status: db.RunStatusCompleted, JobID: "job1", OverallScore: &score, CreatedAt: created},
		{ID: uuid.New(), Filename: "invoice.docx", Status: db.RunStatusRejected, CreatedAt: created},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " 80%")
	assert.Contains(t, lines[0], "job1")
	assert.Contains(t, lines[0], "2025-03-04T10:00:00Z")
	assert.Contains(t, lines[1], db.RunStatusRejected)
	assert.Contains(t, lines[1], "invoice.docx")
}

func TestPrintRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRuns(nil)
	assert.Equal(t, "No runs found\n", buf.String())
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	run := &db.Run{
		ID:           uuid.New(),
		Filename:     "invoice.docx",
		Format:       "docx",
		Status:       db.RunStatusRejected,
		ErrorMessage: "document too short",
		CreatedAt:    time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC),
	}
	artifacts := []db.ArtifactSummary{
		{Step: db.StepExtractedText, Category: db.CategoryIngestion, HasText: true},
	}
	p.PrintRun(run, artifacts, []string{db.StepResumeRecord}, []string{db.StepScoreRecord, db.StepJobRanking})
	output := buf.String()

	assert.Contains(t, output, "RUN "+run.ID.String())
	assert.Contains(t, output, "Status: rejected")
	assert.Contains(t, output, "Error: document too short")
	assert.Contains(t, output, "extracted_text [ingestion]")
	assert.Contains(t, output, "Pending:")
	assert.Contains(t, output, db.StepResumeRecord)
	assert.Contains(t, output, "Blocked:")
	assert.Contains(t, output, db.StepJobRanking)
	assert.NotContains(t, output, "Finished:")
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintText("EXTRACTED TEXT", "")
	assert.Empty(t, buf.String())

	p.PrintText("EXTRACTED TEXT", "Jane Doe\nSkills: Go\n\n")
	assert.Equal(t, "── EXTRACTED TEXT ──\nJane Doe\nSkills: Go\n", buf.String())
}
