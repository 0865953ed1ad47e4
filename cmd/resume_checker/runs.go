package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/observability"
	"github.com/jonathan/resume-checker/internal/pipeline/steps"
	"github.com/jonathan/resume-checker/internal/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect analysis runs recorded in the database",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run with its stored artifacts and records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the analysis tables if they do not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		database, err := connectRuns(cmd.Context())
		if err != nil {
			return err
		}
		database.Close()
		_, _ = fmt.Fprintln(os.Stdout, "Database schema is up to date")
		return nil
	},
}

var (
	runsDatabaseURL string
	runsJobID       string
	runsStatus      string
	runsLimit       int
	runsShowText    bool
)

func init() {
	runsCmd.PersistentFlags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")

	runsListCmd.Flags().StringVar(&runsJobID, "job", "", "Only runs scored against this job ID")
	runsListCmd.Flags().StringVar(&runsStatus, "status", "", "Only runs with this status (running, completed, rejected, failed)")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", db.DefaultListLimit, "Maximum number of runs to list")
	runsShowCmd.Flags().BoolVar(&runsShowText, "text", false, "Also print the extracted text")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd, runsMigrateCmd)
	rootCmd.AddCommand(runsCmd)
}

// connectRuns opens the database named by --db-url or the config; a URL is required
func connectRuns(ctx context.Context) (*db.DB, error) {
	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = appConfig.DatabaseURL
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}
	return openDatabase(ctx, databaseURL)
}

func parseRunID(arg string) (uuid.UUID, error) {
	runID, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run-id: %w", err)
	}
	return runID, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	database, err := connectRuns(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(cmd.Context(), db.RunFilters{
		JobID:  runsJobID,
		Status: runsStatus,
		Limit:  runsLimit,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintRuns(runs)
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	runID, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := connectRuns(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	return showRun(ctx, database, runID, observability.NewPrinter(os.Stdout), runsShowText)
}

// runReader is the part of *db.DB that runs show reads from
type runReader interface {
	steps.ArtifactLister
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error)
	GetResumeRecordByRunID(ctx context.Context, runID uuid.UUID) (*types.ResumeRecord, error)
	GetScoreRecordByRunID(ctx context.Context, runID uuid.UUID) (*types.ScoreRecord, error)
	GetJobRankingByRunID(ctx context.Context, runID uuid.UUID) ([]types.ScoreRecord, error)
}

// showRun prints a run, its step status and whichever records it stored
func showRun(ctx context.Context, reader runReader, runID uuid.UUID, printer *observability.Printer, withText bool) error {
	run, err := reader.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	artifacts, err := reader.ListArtifacts(ctx, runID)
	if err != nil {
		return err
	}
	pending, err := steps.GetAvailableSteps(ctx, reader, runID)
	if err != nil {
		return err
	}
	blocked, err := steps.GetBlockedSteps(ctx, reader, runID)
	if err != nil {
		return err
	}
	printer.PrintRun(run, artifacts, pending, blocked)

	resume, err := reader.GetResumeRecordByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if resume != nil {
		printer.PrintResumeRecord(resume)
	}

	score, err := reader.GetScoreRecordByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if score != nil {
		printer.PrintScoreRecord(score, nil)
	}

	ranking, err := reader.GetJobRankingByRunID(ctx, runID)
	if err != nil {
		return err
	}
	printer.PrintJobRanking(ranking)

	if withText {
		text, err := reader.GetTextArtifact(ctx, runID, db.StepExtractedText)
		if err != nil {
			return err
		}
		printer.PrintText("EXTRACTED TEXT", text)
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	runID, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	database, err := connectRuns(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteRun(cmd.Context(), runID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Deleted run %s\n", runID)
	return nil
}
