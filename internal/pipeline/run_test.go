package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/ingestion"
	"github.com/jonathan/resume-checker/internal/jobs"
	"github.com/jonathan/resume-checker/internal/ranking"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/jonathan/resume-checker/internal/validation"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func newTestAnalyzer(t *testing.T, opts Options) *Analyzer {
	t.Helper()
	if opts.Tagger == nil {
		opts.Tagger = sampleTagger()
	}
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	analyzer, err := NewAnalyzer(opts)
	require.NoError(t, err)
	return analyzer
}

func TestNewAnalyzer_RequiresTagger(t *testing.T) {
	_, err := NewAnalyzer(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tagger is required")
}

func TestNewAnalyzer_InvalidWeights(t *testing.T) {
	_, err := NewAnalyzer(Options{
		Tagger:  sampleTagger(),
		Weights: &types.Weights{Skills: 0.5, Experience: 0.5, Education: 0.5},
	})
	var weightsErr *ranking.WeightsError
	require.True(t, errors.As(err, &weightsErr))
}

func TestNewAnalyzer_DefaultCatalog(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})
	jobList, err := analyzer.Jobs().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobList, 3)
}

func TestLoadAndExtractText_DOCX(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})

	text, err := analyzer.LoadAndExtractText(sampleResumeDOCX(t), "resume.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Go, Python, SQL, Kubernetes, Docker")
}

func TestLoadAndExtractText_Errors(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := analyzer.LoadAndExtractText([]byte("plain text"), "resume.txt")
		var formatErr *ingestion.UnsupportedFormatError
		assert.True(t, errors.As(err, &formatErr))
	})

	t.Run("too short", func(t *testing.T) {
		_, err := analyzer.LoadAndExtractText(buildDOCX(t, "Jane Doe", "Skills: Go"), "short.docx")
		var shortErr *validation.TooShortError
		assert.True(t, errors.As(err, &shortErr))
	})

	t.Run("corrupt document", func(t *testing.T) {
		_, err := analyzer.LoadAndExtractText([]byte("not a zip archive"), "broken.docx")
		var extractionErr *ingestion.ExtractionError
		assert.True(t, errors.As(err, &extractionErr))
	})
}

func TestLoadAndExtractFile(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})

	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, sampleResumeDOCX(t), 0o644))

	text, err := analyzer.LoadAndExtractFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Stanford University")

	_, err = analyzer.LoadAndExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	var notFound *ingestion.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestExtractEntitiesAndComputeScore(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})

	resume := analyzer.ExtractEntities(sampleResume)
	assert.Equal(t, "Jane Doe", resume.Name)
	assert.Equal(t, []string{"Go", "Python", "SQL", "Kubernetes", "Docker"}, resume.Skills)

	job, err := jobs.DefaultCatalog().Get(context.Background(), "job1")
	require.NoError(t, err)

	score, err := analyzer.ComputeScore(resume, job, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score.SkillMatchScore, 1e-9)
	assert.InDelta(t, 1.0, score.ExperienceScore, 1e-9)
	assert.InDelta(t, 1.0, score.EducationScore, 1e-9)
	assert.InDelta(t, 0.8, score.OverallScore, 1e-9)
}

func TestScoreJob_UnknownJob(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})
	resume := analyzer.ExtractEntities(sampleResume)

	_, err := analyzer.ScoreJob(context.Background(), resume, "job42", nil)
	assert.True(t, errors.Is(err, jobs.ErrJobNotFound))
}

func TestRankCatalog(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})
	resume := analyzer.ExtractEntities(sampleResume)

	ranked, err := analyzer.RankCatalog(context.Background(), resume, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "job1", ranked[0].JobID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].OverallScore, ranked[i].OverallScore)
	}
}

func TestRankJobs_CustomList(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})
	resume := analyzer.ExtractEntities(sampleResume)

	jobList := []types.JobRequirements{
		{ID: "ops", Title: "Ops", RequiredSkills: []string{"docker", "kubernetes"}},
		{ID: "data", Title: "Data", RequiredSkills: []string{"pandas"}},
	}
	ranked, err := analyzer.RankJobs(context.Background(), resume, jobList, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "ops", ranked[0].JobID)
	assert.Equal(t, "data", ranked[1].JobID)
}

func TestAnalyze_RecordsRun(t *testing.T) {
	store := newFakeStore()
	var events []ProgressEvent
	analyzer := newTestAnalyzer(t, Options{
		Store:      store,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})

	analysis, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "job1")
	require.NoError(t, err)

	assert.Equal(t, store.runID.String(), analysis.RunID)
	assert.Equal(t, "Jane Doe", analysis.Resume.Name)
	require.NotNil(t, analysis.Job)
	assert.Equal(t, "Senior Software Engineer", analysis.Job.Title)
	require.NotNil(t, analysis.Score)
	assert.InDelta(t, 0.8, analysis.Score.OverallScore, 1e-9)
	assert.Equal(t, types.FormatDOCX, analysis.Metadata.Format)
	assert.Positive(t, analysis.Metadata.TextLength)

	assert.Equal(t, db.RunInput{
		Filename:    "resume.docx",
		Format:      "docx",
		ContentHash: analysis.Metadata.Hash,
		JobID:       "job1",
	}, store.input)
	assert.Equal(t, []string{
		db.StepExtractedText,
		db.StepDocumentMetadata,
		db.StepValidationReport,
		db.StepResumeRecord,
		db.StepScoreRecord,
	}, store.steps())
	assert.Equal(t, db.CategoryIngestion, store.artifacts[0].category)
	assert.Contains(t, store.artifacts[0].text, "Jane Doe")

	assert.True(t, store.completed)
	require.NotNil(t, store.score)
	assert.InDelta(t, 0.8, *store.score, 1e-9)

	require.Len(t, events, 4)
	assert.Equal(t, db.StepExtractedText, events[0].Step)
	assert.Equal(t, db.CategoryScoring, events[3].Category)
	for _, e := range events {
		assert.Equal(t, store.runID.String(), e.RunID)
	}
}

func TestAnalyze_WithoutJob(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	analysis, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "")
	require.NoError(t, err)
	assert.Nil(t, analysis.Score)
	assert.Nil(t, analysis.Job)
	assert.NotContains(t, store.steps(), db.StepScoreRecord)
	assert.True(t, store.completed)
	assert.Nil(t, store.score)
}

func TestAnalyze_WithoutStore(t *testing.T) {
	analyzer := newTestAnalyzer(t, Options{})

	analysis, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "job2")
	require.NoError(t, err)
	assert.Empty(t, analysis.RunID)
	require.NotNil(t, analysis.Score)
	assert.Equal(t, "job2", analysis.Score.JobID)
}

func TestAnalyze_RejectedDocument(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	_, err := analyzer.Analyze(context.Background(), buildDOCX(t, "Invoice #1042", "Amount due: $300"), "invoice.docx", "job1")
	require.Error(t, err)
	assert.True(t, IsRejection(err))

	assert.Equal(t, db.RunStatusRejected, store.status)
	assert.NotEmpty(t, store.message)
	assert.False(t, store.completed)
	assert.Equal(t, []string{
		db.StepExtractedText,
		db.StepDocumentMetadata,
		db.StepValidationReport,
	}, store.steps())
}

func TestAnalyze_ExtractionFailureMarksRunFailed(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	_, err := analyzer.Analyze(context.Background(), []byte("garbage"), "resume.pdf", "")
	require.Error(t, err)
	assert.False(t, IsRejection(err))
	assert.Equal(t, db.RunStatusFailed, store.status)
	assert.Empty(t, store.steps())
}

func TestAnalyze_UnknownJobStopsEarly(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	_, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "nope")
	assert.True(t, errors.Is(err, jobs.ErrJobNotFound))
	assert.Empty(t, store.status, "no run should be created")
}

func TestAnalyze_StoreFailuresDoNotFailAnalysis(t *testing.T) {
	t.Run("create fails", func(t *testing.T) {
		store := newFakeStore()
		store.createErr = errors.New("connection refused")
		analyzer := newTestAnalyzer(t, Options{Store: store})

		analysis, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "job1")
		require.NoError(t, err)
		assert.Empty(t, analysis.RunID)
		assert.Empty(t, store.steps())
		assert.False(t, store.completed)
	})

	t.Run("save fails", func(t *testing.T) {
		store := newFakeStore()
		store.saveErr = errors.New("disk full")
		analyzer := newTestAnalyzer(t, Options{Store: store})

		analysis, err := analyzer.Analyze(context.Background(), sampleResumeDOCX(t), "resume.docx", "job1")
		require.NoError(t, err)
		assert.NotNil(t, analysis.Score)
		assert.True(t, store.completed)
	})
}

func TestAnalyze_CancelledContext(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, sampleResumeDOCX(t), "resume.docx", "")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, db.RunStatusFailed, store.status)
}

func TestAnalyzeDocument_FromFile(t *testing.T) {
	store := newFakeStore()
	analyzer := newTestAnalyzer(t, Options{Store: store})

	path := filepath.Join(t.TempDir(), "Jane_Doe.DOCX")
	require.NoError(t, os.WriteFile(path, sampleResumeDOCX(t), 0o644))
	doc, err := ingestion.LoadFile(path)
	require.NoError(t, err)

	analysis, err := analyzer.AnalyzeDocument(context.Background(), doc, "job1")
	require.NoError(t, err)
	assert.Equal(t, "Jane_Doe.DOCX", store.input.Filename)
	assert.InDelta(t, 0.8, analysis.Score.OverallScore, 1e-9)
	assert.True(t, store.completed)
}
