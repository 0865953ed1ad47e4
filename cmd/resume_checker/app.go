package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-checker/internal/config"
	"github.com/jonathan/resume-checker/internal/db"
	"github.com/jonathan/resume-checker/internal/fetch"
	"github.com/jonathan/resume-checker/internal/ingestion"
	"github.com/jonathan/resume-checker/internal/jobs"
	"github.com/jonathan/resume-checker/internal/logger"
	"github.com/jonathan/resume-checker/internal/nlp"
	"github.com/jonathan/resume-checker/internal/observability"
	"github.com/jonathan/resume-checker/internal/pipeline"
	"github.com/jonathan/resume-checker/internal/schemas"
	"github.com/jonathan/resume-checker/internal/types"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool
	verbose    bool

	appLogger *zap.Logger
	appConfig config.Config
)

// setupApp builds the logger and the merged configuration before any command runs
func setupApp(cmd *cobra.Command, _ []string) error {
	log, err := logger.New(jsonLogs, debugLogs)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appLogger = log.With(zap.String("command", cmd.Name()))

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.Verbose = cfg.Verbose || verbose
	appConfig = cfg
	return nil
}

// loadConfig reads the config file (or the environment when path is empty),
// fills defaults and validates the result
func loadConfig(path string) (config.Config, error) {
	var loaded *config.Config
	var err error
	if path != "" {
		loaded, err = config.LoadConfig(path)
	} else {
		loaded, err = config.LoadEnv()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := loaded.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseWeights parses "skills,experience,education", e.g. "0.5,0.25,0.25"
func parseWeights(s string) (*types.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid --weights %q: expected skills,experience,education", s)
	}

	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --weights %q: %w", s, err)
		}
		values[i] = v
	}

	w := &types.Weights{Skills: values[0], Experience: values[1], Education: values[2]}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid --weights %q: %w", s, err)
	}
	return w, nil
}

// jobsProvider returns the catalog from path, or the built-in demo jobs when path is empty
func jobsProvider(path string) (*jobs.Catalog, error) {
	if path == "" {
		return jobs.DefaultCatalog(), nil
	}
	catalog, err := jobs.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	return catalog, nil
}

// loadDocument loads a local path with the ingestion loader, or downloads an s3:// object.
// The extension is checked before anything is read.
func loadDocument(ctx context.Context, location string, s3cfg fetch.Config) (*types.RawDocument, error) {
	if !fetch.IsS3URI(location) {
		return ingestion.LoadFile(location)
	}

	if _, err := ingestion.DetectFormat(location); err != nil {
		return nil, err
	}
	fetcher, err := fetch.NewS3Fetcher(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	data, filename, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return ingestion.LoadBytes(data, filename)
}

// openDatabase connects to the result store when a URL is configured. It returns nil, nil otherwise.
func openDatabase(ctx context.Context, databaseURL string) (*db.DB, error) {
	if databaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// analyzerOptions collects what newAnalyzer needs beyond the global config.
// store must be left nil rather than set to a nil *db.DB.
type analyzerOptions struct {
	jobs    jobs.Provider
	weights *types.Weights
	store   pipeline.RunStore
}

// newAnalyzer loads the NLP model and builds the pipeline. Verbose mode prints progress to stderr.
func newAnalyzer(opts analyzerOptions) (*pipeline.Analyzer, error) {
	tagger, err := nlp.NewProseTagger(appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to load NLP model: %w", err)
	}

	weights := opts.weights
	if weights == nil {
		weights = &appConfig.Weights
	}

	pipelineOpts := pipeline.Options{
		Tagger:  tagger,
		Weights: weights,
		Jobs:    opts.jobs,
		Store:   opts.store,
		Logger:  appLogger,
	}
	if appConfig.Verbose {
		pipelineOpts.OnProgress = progressPrinter(os.Stderr)
	}
	return pipeline.NewAnalyzer(pipelineOpts)
}

// progressPrinter writes one line per progress event
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func progressPrinter(out io.Writer) pipeline.ProgressCallback {
	return func(e pipeline.ProgressEvent) {
		fmt.Fprintf(out, "[%s] %s\n", e.Category, e.Message)
	}
}

// analysisError adds the user-facing explanation to rejections and unreadable input
func analysisError(err error) error {
	if pipeline.IsRejection(err) || pipeline.IsInputError(err) {
		return fmt.Errorf("%s (%w)", pipeline.UserMessage(err), err)
	}
	return err
}

// checkSchema validates v against an embedded schema. A mismatch is an error;
// a schema that cannot be loaded only produces a warning.
func checkSchema(schemaName string, v any) error {
	err := schemas.ValidateValue(schemaName, v)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = os.Stdout.Write(jsonBytes)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// verbosePrinter returns a stderr printer in verbose mode and nil otherwise
func verbosePrinter() *observability.Printer {
	if !appConfig.Verbose {
		return nil
	}
	return observability.NewPrinter(os.Stderr)
}
