package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-checker/internal/types"
)

// decodeArtifact unmarshals stored artifact content. Empty content decodes to nil.
func decodeArtifact[T any](content []byte, step string) (*T, error) {
	if len(content) == 0 {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", step, err)
	}
	return &v, nil
}

// GetResumeRecordByRunID loads the extracted resume for a run
func (db *DB) GetResumeRecordByRunID(ctx context.Context, runID uuid.UUID) (*types.ResumeRecord, error) {
	content, err := db.GetArtifact(ctx, runID, StepResumeRecord)
	if err != nil {
		return nil, err
	}
	return decodeArtifact[types.ResumeRecord](content, StepResumeRecord)
}

// GetScoreRecordByRunID loads the score for a run
func (db *DB) GetScoreRecordByRunID(ctx context.Context, runID uuid.UUID) (*types.ScoreRecord, error) {
	content, err := db.GetArtifact(ctx, runID, StepScoreRecord)
	if err != nil {
		return nil, err
	}
	return decodeArtifact[types.ScoreRecord](content, StepScoreRecord)
}

// GetJobRankingByRunID loads the multi-job ranking for a run
func (db *DB) GetJobRankingByRunID(ctx context.Context, runID uuid.UUID) ([]types.ScoreRecord, error) {
	content, err := db.GetArtifact(ctx, runID, StepJobRanking)
	if err != nil {
		return nil, err
	}
	ranking, err := decodeArtifact[[]types.ScoreRecord](content, StepJobRanking)
	if err != nil || ranking == nil {
		return nil, err
	}
	return *ranking, nil
}
