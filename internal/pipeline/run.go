// Package pipeline provides the high-level orchestration for resume analysis:
// loading, text extraction, content validation, entity extraction and scoring.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/ingestion"
	"github.com/jonathan/resume-checker/internal/jobs"
	"github.com/jonathan/resume-checker/internal/logger"
	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/parsing"
	"github.com/jonathan/resume-checker/internal/pipeline/steps"
	"github.com/jonathan/resume-checker/internal/ranking"
	"github.com/jonathan/resume-checker/internal/types"
	"github.com/jonathan/resume-checker/internal/validation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunStore records analysis runs and their artifacts. *db.DB satisfies it.
type RunStore interface {
	CreateRun(ctx context.Context, input db.RunInput) (uuid.UUID, error)
	SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, overallScore *float64) error
	FailRun(ctx context.Context, runID uuid.UUID, status, message string) error
}

// Options holds configuration for building an Analyzer
type Options struct {
	Tagger     nlp.Tagger     // Required
	Weights    *types.Weights // nil uses types.DefaultWeights
	Now        func() time.Time
	Jobs       jobs.Provider // nil uses jobs.DefaultCatalog
	Store      RunStore      // nil disables run recording
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Analysis is the outcome of a full Analyze call
type Analysis struct {
	RunID    string                 `json:"run_id,omitempty"`
	Metadata *ingestion.Metadata    `json:"metadata"`
	Report   *validation.Report     `json:"validation"`
	Resume   *types.ResumeRecord    `json:"resume"`
	Job      *types.JobRequirements `json:"job,omitempty"`
	Score    *types.ScoreRecord     `json:"score,omitempty"`
}

// Analyzer runs the analysis steps. It is safe for concurrent use when the
// configured Tagger, Provider and RunStore are.
type Analyzer struct {
	extractor  *parsing.Extractor
	scorer     *ranking.Scorer
	provider   jobs.Provider
	store      RunStore
	logger     *zap.Logger
	onProgress ProgressCallback
}

// NewAnalyzer builds an Analyzer from opts
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if opts.Tagger == nil {
		return nil, fmt.Errorf("tagger is required")
	}
	log := logger.OrNop(opts.Logger)

	weights := types.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	scorer, err := ranking.NewScorer(weights, opts.Now, log)
	if err != nil {
		return nil, err
	}

	provider := opts.Jobs
	if provider == nil {
		provider = jobs.DefaultCatalog()
	}

	return &Analyzer{
		extractor:  parsing.NewExtractor(opts.Tagger, log),
		scorer:     scorer,
		provider:   provider,
		store:      opts.Store,
		logger:     log,
		onProgress: opts.OnProgress,
	}, nil
}

// emitProgress calls the progress callback if configured
func (a *Analyzer) emitProgress(runID uuid.UUID, step, message string, content any) {
	if a.onProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: steps.Category(step),
		Message:  message,
		Content:  content,
	}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	a.onProgress(event)
}

// LoadAndExtractText loads an uploaded document, extracts its text and checks
// that the text looks like a resume.
func (a *Analyzer) LoadAndExtractText(data []byte, filename string) (string, error) {
	doc, err := ingestion.LoadBytes(data, filename)
	if err != nil {
		return "", err
	}
	return a.extractAndValidate(doc)
}

// LoadAndExtractFile is LoadAndExtractText for a file on disk
func (a *Analyzer) LoadAndExtractFile(path string) (string, error) {
	doc, err := ingestion.LoadFile(path)
	if err != nil {
		return "", err
	}
	return a.extractAndValidate(doc)
}

func (a *Analyzer) extractAndValidate(doc *types.RawDocument) (string, error) {
	log := logger.WithFields(a.logger, zap.String(logger.FieldFilename, doc.Filename))
	log.Debug("loaded document", zap.String("format", string(doc.Format)), zap.Int64("bytes", doc.ByteSize))

	text, err := ingestion.ExtractText(doc)
	if err != nil {
		return "", err
	}
	log.Debug("extracted text", zap.String("preview", logger.TruncateForLog(text, 120)))

	if err := validation.ValidateResumeContent(text); err != nil {
		log.Info("document rejected", zap.Error(err))
		return "", err
	}
	return text, nil
}

// ExtractEntities turns validated resume text into a ResumeRecord
func (a *Analyzer) ExtractEntities(text string) *types.ResumeRecord {
	return a.extractor.Extract(text)
}

// ComputeScore scores a resume against one job. nil weights use the analyzer's weights.
func (a *Analyzer) ComputeScore(resume *types.ResumeRecord, job *types.JobRequirements, weights *types.Weights) (*types.ScoreRecord, error) {
	return a.scorer.ComputeScore(resume, job, weights)
}

// ScoreJob looks up a job by ID and scores the resume against it
func (a *Analyzer) ScoreJob(ctx context.Context, resume *types.ResumeRecord, jobID string, weights *types.Weights) (*types.ScoreRecord, error) {
	job, err := a.provider.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return a.scorer.ComputeScore(resume, job, weights)
}

// RankJobs scores the resume against each job, best match first
func (a *Analyzer) RankJobs(ctx context.Context, resume *types.ResumeRecord, jobList []types.JobRequirements, weights *types.Weights) ([]types.ScoreRecord, error) {
	return a.scorer.RankJobs(ctx, resume, jobList, weights)
}

// RankCatalog ranks the resume against every job of the configured provider
func (a *Analyzer) RankCatalog(ctx context.Context, resume *types.ResumeRecord, weights *types.Weights) ([]types.ScoreRecord, error) {
	jobList, err := a.provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return a.scorer.RankJobs(ctx, resume, jobList, weights)
}

// Jobs returns the analyzer's job provider
func (a *Analyzer) Jobs() jobs.Provider {
	return a.provider
}

// Analyze runs every step for one uploaded document. An empty jobID skips
// scoring. When a RunStore is configured each step's output is recorded;
// storage failures are logged and do not fail the analysis.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, filename, jobID string) (*Analysis, error) {
	doc, err := ingestion.LoadBytes(data, filename)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeDocument(ctx, doc, jobID)
}

// AnalyzeDocument is Analyze for a document that is already loaded, e.g. by ingestion.LoadFile.
// The job is resolved before a run is recorded.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *types.RawDocument, jobID string) (*Analysis, error) {
	var job *types.JobRequirements
	if jobID != "" {
		var err error
		job, err = a.provider.Get(ctx, jobID)
		if err != nil {
			return nil, err
		}
	}

	fields := []zap.Field{zap.String(logger.FieldFilename, doc.Filename)}
	if job != nil {
		fields = append(fields, zap.String(logger.FieldJobID, job.ID))
	}
	log := logger.WithFields(a.logger, fields...)

	metadata := ingestion.NewMetadata(doc, "")
	runID := a.startRun(ctx, log, db.RunInput{
		Filename:    doc.Filename,
		Format:      string(doc.Format),
		ContentHash: metadata.Hash,
		JobID:       jobID,
	})
	if runID != uuid.Nil {
		log = log.With(zap.String(logger.FieldRunID, runID.String()))
	}

	text, err := ingestion.ExtractText(doc)
	if err != nil {
		a.failRun(ctx, log, runID, db.RunStatusFailed, err)
		return nil, err
	}
	metadata = ingestion.NewMetadata(doc, text)
	a.saveText(ctx, log, runID, db.StepExtractedText, text)
	a.save(ctx, log, runID, db.StepDocumentMetadata, metadata)
	a.emitProgress(runID, db.StepExtractedText,
		fmt.Sprintf("Extracted %d characters from %s", metadata.TextLength, doc.Filename), metadata)

	report := validation.Inspect(text)
	a.save(ctx, log, runID, db.StepValidationReport, report)
	if err := report.Err(); err != nil {
		log.Info("document rejected", zap.Error(err))
		a.emitProgress(runID, db.StepValidationReport, "Document rejected: "+UserMessage(err), report)
		a.failRun(ctx, log, runID, db.RunStatusRejected, err)
		return nil, err
	}
	a.emitProgress(runID, db.StepValidationReport,
		fmt.Sprintf("Content accepted (%d resume indicators, structural score %d)", len(report.ResumeIndicators), report.StructuralScore), report)

	if err := ctx.Err(); err != nil {
		a.failRun(ctx, log, runID, db.RunStatusFailed, err)
		return nil, err
	}

	resume := a.extractor.Extract(text)
	a.save(ctx, log, runID, db.StepResumeRecord, resume)
	a.emitProgress(runID, db.StepResumeRecord,
		fmt.Sprintf("Extracted %d skills, %d education and %d experience entries",
			len(resume.Skills), len(resume.Education), len(resume.Experience)), resume)

	analysis := &Analysis{
		Metadata: metadata,
		Report:   report,
		Resume:   resume,
		Job:      job,
	}
	if runID != uuid.Nil {
		analysis.RunID = runID.String()
	}

	var overall *float64
	if job != nil {
		score, err := a.scorer.ComputeScore(resume, job, nil)
		if err != nil {
			a.failRun(ctx, log, runID, db.RunStatusFailed, err)
			return nil, err
		}
		analysis.Score = score
		overall = &score.OverallScore
		a.save(ctx, log, runID, db.StepScoreRecord, score)
		a.emitProgress(runID, db.StepScoreRecord,
			fmt.Sprintf("Scored %.2f against %s", score.OverallScore, job.Title), score)
	}

	if runID != uuid.Nil {
		if err := a.store.CompleteRun(ctx, runID, overall); err != nil {
			log.Warn("failed to complete run", zap.Error(err))
		}
	}
	log.Info("analysis complete")
	return analysis, nil
}

// startRun creates a run record, returning uuid.Nil when no store is configured or creation fails
func (a *Analyzer) startRun(ctx context.Context, log *zap.Logger, input db.RunInput) uuid.UUID {
	if a.store == nil {
		return uuid.Nil
	}
	runID, err := a.store.CreateRun(ctx, input)
	if err != nil {
		log.Warn("failed to create run, continuing without persistence", zap.Error(err))
		return uuid.Nil
	}
	return runID
}

func (a *Analyzer) save(ctx context.Context, log *zap.Logger, runID uuid.UUID, step string, content any) {
	if runID == uuid.Nil {
		return
	}
	if err := a.store.SaveArtifact(ctx, runID, step, steps.Category(step), content); err != nil {
		log.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (a *Analyzer) saveText(ctx context.Context, log *zap.Logger, runID uuid.UUID, step, text string) {
	if runID == uuid.Nil {
		return
	}
	if err := a.store.SaveTextArtifact(ctx, runID, step, steps.Category(step), text); err != nil {
		log.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (a *Analyzer) failRun(ctx context.Context, log *zap.Logger, runID uuid.UUID, status string, cause error) {
	if runID == uuid.Nil {
		return
	}
	if err := a.store.FailRun(ctx, runID, status, cause.Error()); err != nil {
		log.Warn("failed to record run failure", zap.Error(err))
	}
}
