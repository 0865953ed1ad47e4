package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Filename     string     `json:"filename"`
	Format       string     `json:"format"`
	ContentHash  string     `json:"content_hash"`
	JobID        string     `json:"job_id,omitempty"`
	Status       string     `json:"status"`
	OverallScore *float64   `json:"overall_score,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RunInput describes the document an analysis run starts from
type RunInput struct {
	Filename    string
	Format      string
	ContentHash string
	JobID       string
}

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusRejected  = "rejected" // content validation failed
	RunStatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types
const (
	StepExtractedText    = "extracted_text"
	StepDocumentMetadata = "document_metadata"
	StepValidationReport = "validation_report"
	StepResumeRecord     = "resume_record"
	StepScoreRecord      = "score_record"
	StepJobRanking       = "job_ranking"
)

// Artifact category constants
const (
	CategoryIngestion  = "ingestion"
	CategoryValidation = "validation"
	CategoryParsing    = "parsing"
	CategoryScoring    = "scoring"
)
