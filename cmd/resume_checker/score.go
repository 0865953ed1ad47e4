package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/pipeline"
	"github.com/jonathan/resume-checker/internal/pipeline/steps"
	"github.com/jonathan/resume-checker/internal/types"
	schemafiles "github.com/jonathan/resume-checker/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against one job or rank it against every job",
	Long: `Run the full analysis on a resume and score it against a job (--job) or rank it
against every job in the catalog (--all). The catalog defaults to the built-in demo
jobs; use --jobs-file or jobs_file in the config for your own.

When a database URL is configured the run and its artifacts are recorded.
--run rescores the resume record stored for an earlier run instead of reading a file.`,
	RunE: runScore,
}

var (
	scoreInput       string
	scoreRunID       string
	scoreJobID       string
	scoreAll         bool
	scoreJobsFile    string
	scoreWeights     string
	scoreDatabaseURL string
	scoreOutput      string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path or s3:// URI of the resume")
	scoreCmd.Flags().StringVar(&scoreRunID, "run", "", "Rescore the resume stored for this run ID (requires a database)")
	scoreCmd.Flags().StringVarP(&scoreJobID, "job", "j", "", "Job ID to score against (mutually exclusive with --all)")
	scoreCmd.Flags().BoolVar(&scoreAll, "all", false, "Rank the resume against every job in the catalog")
	scoreCmd.Flags().StringVar(&scoreJobsFile, "jobs-file", "", "Path to a JSON job catalog (overrides config)")
	scoreCmd.Flags().StringVar(&scoreWeights, "weights", "", "Score weights as skills,experience,education (e.g. 0.5,0.25,0.25)")
	scoreCmd.Flags().StringVar(&scoreDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	scoreCmd.MarkFlagsOneRequired("in", "run")
	scoreCmd.MarkFlagsMutuallyExclusive("in", "run")
	scoreCmd.MarkFlagsMutuallyExclusive("job", "all")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if scoreJobID == "" && !scoreAll {
		return fmt.Errorf("must provide either --job or --all")
	}

	var weights *types.Weights
	if scoreWeights != "" {
		w, err := parseWeights(scoreWeights)
		if err != nil {
			return err
		}
		weights = w
	}

	jobsFile := scoreJobsFile
	if jobsFile == "" {
		jobsFile = appConfig.JobsFile
	}
	catalog, err := jobsProvider(jobsFile)
	if err != nil {
		return err
	}

	databaseURL := scoreDatabaseURL
	if databaseURL == "" {
		databaseURL = appConfig.DatabaseURL
	}

	if scoreRunID != "" {
		return rescoreRun(ctx, databaseURL, analyzerOptions{jobs: catalog, weights: weights})
	}

	doc, err := loadDocument(ctx, scoreInput, appConfig.S3)
	if err != nil {
		return analysisError(err)
	}

	opts := analyzerOptions{jobs: catalog, weights: weights}
	database, err := openDatabase(ctx, databaseURL)
	if err != nil {
		appLogger.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Failed to connect to database: %v\n", err)
	}
	if database != nil {
		defer database.Close()
		opts.store = database
	}

	analyzer, err := newAnalyzer(opts)
	if err != nil {
		return err
	}

	analysis, err := analyzer.AnalyzeDocument(ctx, doc, scoreJobID)
	if err != nil {
		return analysisError(err)
	}
	if analysis.RunID != "" {
		_, _ = fmt.Fprintf(os.Stderr, "Run: %s\n", analysis.RunID)
	}

	if !scoreAll {
		return writeScore(analysis.Score, analysis.Job)
	}

	ranked, err := analyzer.RankCatalog(ctx, analysis.Resume, nil)
	if err != nil {
		return err
	}
	if database != nil && analysis.RunID != "" {
		saveRanking(cmd, database, analysis.RunID, ranked)
	}
	return writeRanking(ranked)
}

// rescoreRun scores the resume record of a stored run without reading the document again
func rescoreRun(ctx context.Context, databaseURL string, opts analyzerOptions) error {
	runID, err := parseRunID(scoreRunID)
	if err != nil {
		return err
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required for --run (set DATABASE_URL or use --db-url)")
	}
	database, err := openDatabase(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	resume, err := storedResume(ctx, database, runID)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(opts)
	if err != nil {
		return err
	}

	if scoreAll {
		ranked, err := analyzer.RankCatalog(ctx, resume, nil)
		if err != nil {
			return err
		}
		return writeRanking(ranked)
	}

	score, err := scoreStored(ctx, analyzer, resume, scoreJobID)
	if err != nil {
		return err
	}
	job, err := analyzer.Jobs().Get(ctx, scoreJobID)
	if err != nil {
		return err
	}
	return writeScore(score, job)
}

type resumeRecordReader interface {
	GetResumeRecordByRunID(ctx context.Context, runID uuid.UUID) (*types.ResumeRecord, error)
}

// storedResume loads the resume record saved for a run
func storedResume(ctx context.Context, reader resumeRecordReader, runID uuid.UUID) (*types.ResumeRecord, error) {
	resume, err := reader.GetResumeRecordByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume record: %w", err)
	}
	if resume == nil {
		return nil, fmt.Errorf("run %s has no resume record", runID)
	}
	return resume, nil
}

// scoreStored scores a stored resume against one catalog job
func scoreStored(ctx context.Context, analyzer *pipeline.Analyzer, resume *types.ResumeRecord, jobID string) (*types.ScoreRecord, error) {
	score, err := analyzer.ScoreJob(ctx, resume, jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to score run resume: %w", err)
	}
	return score, nil
}

func writeScore(score *types.ScoreRecord, job *types.JobRequirements) error {
	if printer := verbosePrinter(); printer != nil {
		printer.PrintScoreRecord(score, job)
	}
	if err := checkSchema(schemafiles.ScoreRecord, score); err != nil {
		return err
	}
	return writeJSON(scoreOutput, score)
}

func writeRanking(ranked []types.ScoreRecord) error {
	if printer := verbosePrinter(); printer != nil {
		printer.PrintJobRanking(ranked)
	}
	if err := checkSchema(schemafiles.JobRanking, ranked); err != nil {
		return err
	}
	return writeJSON(scoreOutput, ranked)
}

// saveRanking stores the ranking as an artifact of an already recorded run
func saveRanking(cmd *cobra.Command, database *db.DB, runID string, ranked []types.ScoreRecord) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return
	}
	if err := steps.ValidateDependencies(cmd.Context(), database, id, db.StepJobRanking); err != nil {
		appLogger.Warn("not saving ranking", zap.Error(err))
		return
	}
	if err := database.SaveArtifact(cmd.Context(), id, db.StepJobRanking, steps.Category(db.StepJobRanking), ranked); err != nil {
		appLogger.Warn("failed to save ranking", zap.Error(err))
	}
}
