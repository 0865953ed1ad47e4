// Package steps provides step definitions and dependency validation
// for the resume analysis pipeline.
package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	dbpkg "github.com/jonathan/resume-checker/internal/db"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions, keyed by the artifact each step stores
var StepRegistry = map[string]StepDefinition{
	dbpkg.StepExtractedText: {
		Name:         dbpkg.StepExtractedText,
		Category:     dbpkg.CategoryIngestion,
		Dependencies: []string{},
		Optional:     []string{},
	},
	dbpkg.StepDocumentMetadata: {
		Name:         dbpkg.StepDocumentMetadata,
		Category:     dbpkg.CategoryIngestion,
		Dependencies: []string{dbpkg.StepExtractedText},
		Optional:     []string{},
	},
	dbpkg.StepValidationReport: {
		Name:         dbpkg.StepValidationReport,
		Category:     dbpkg.CategoryValidation,
		Dependencies: []string{dbpkg.StepExtractedText},
		Optional:     []string{},
	},
	dbpkg.StepResumeRecord: {
		Name:         dbpkg.StepResumeRecord,
		Category:     dbpkg.CategoryParsing,
		Dependencies: []string{dbpkg.StepValidationReport},
		Optional:     []string{dbpkg.StepDocumentMetadata},
	},
	dbpkg.StepScoreRecord: {
		Name:         dbpkg.StepScoreRecord,
		Category:     dbpkg.CategoryScoring,
		Dependencies: []string{dbpkg.StepResumeRecord},
		Optional:     []string{},
	},
	dbpkg.StepJobRanking: {
		Name:         dbpkg.StepJobRanking,
		Category:     dbpkg.CategoryScoring,
		Dependencies: []string{dbpkg.StepResumeRecord},
		Optional:     []string{},
	},
}

// Order lists the registry steps in execution order
var Order = []string{
	dbpkg.StepExtractedText,
	dbpkg.StepDocumentMetadata,
	dbpkg.StepValidationReport,
	dbpkg.StepResumeRecord,
	dbpkg.StepScoreRecord,
	dbpkg.StepJobRanking,
}

// ArtifactLister is the part of the result store needed to inspect a run.
// *db.DB satisfies it.
type ArtifactLister interface {
	ListArtifacts(ctx context.Context, runID uuid.UUID) ([]dbpkg.ArtifactSummary, error)
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies for %s: %v", e.Step, e.MissingDependencies)
}

// Category returns the category of a registered step, or "" for unknown steps
func Category(stepName string) string {
	return StepRegistry[stepName].Category
}

// CompletedSteps returns the set of steps that have a stored artifact for the run
func CompletedSteps(ctx context.Context, lister ArtifactLister, runID uuid.UUID) (map[string]bool, error) {
	if lister == nil {
		return nil, fmt.Errorf("no artifact store configured")
	}
	artifacts, err := lister.ListArtifacts(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts for run %s: %w", runID, err)
	}

	completed := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		completed[a.Step] = true
	}
	return completed, nil
}

// missingDependencies returns the required dependencies of def absent from completed
func missingDependencies(def StepDefinition, completed map[string]bool) []string {
	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	return missing
}

// ValidateDependencies checks if all required dependencies for a step are stored
func ValidateDependencies(ctx context.Context, lister ArtifactLister, runID uuid.UUID, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	completed, err := CompletedSteps(ctx, lister, runID)
	if err != nil {
		return err
	}

	if missing := missingDependencies(def, completed); len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetAvailableSteps returns steps without an artifact whose dependencies are stored, in execution order
func GetAvailableSteps(ctx context.Context, lister ArtifactLister, runID uuid.UUID) ([]string, error) {
	completed, err := CompletedSteps(ctx, lister, runID)
	if err != nil {
		return nil, err
	}
	return availableSteps(completed), nil
}

func availableSteps(completed map[string]bool) []string {
	var available []string
	for _, stepName := range Order {
		if completed[stepName] {
			continue
		}
		if len(missingDependencies(StepRegistry[stepName], completed)) > 0 {
			continue
		}
		available = append(available, stepName)
	}
	return available
}

// GetBlockedSteps returns steps that are blocked (dependencies not stored), in execution order
func GetBlockedSteps(ctx context.Context, lister ArtifactLister, runID uuid.UUID) ([]string, error) {
	completed, err := CompletedSteps(ctx, lister, runID)
	if err != nil {
		return nil, err
	}
	return blockedSteps(completed), nil
}

func blockedSteps(completed map[string]bool) []string {
	var blocked []string
	for _, stepName := range Order {
		if completed[stepName] {
			continue
		}
		if len(missingDependencies(StepRegistry[stepName], completed)) > 0 {
			blocked = append(blocked, stepName)
		}
	}
	return blocked
}
