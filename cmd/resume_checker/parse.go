package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-checker/internal/fetch"
	"github.com/jonathan/resume-checker/internal/pipeline"
	"github.com/jonathan/resume-checker/internal/types"
	schemafiles "github.com/jonathan/resume-checker/schemas"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract a structured resume record from a PDF or DOCX resume",
	Long: `Load and validate a resume, then extract name, contact details, education, skills
and experience into ResumeRecord JSON that validates against the resume_record schema.`,
	RunE: runParse,
}

var (
	parseInput  string
	parseOutput string
)

func init() {
	parseCmd.Flags().StringVarP(&parseInput, "in", "i", "", "Path or s3:// URI of the resume (required)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output JSON file (default: stdout)")

	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	analyzer, err := newAnalyzer(analyzerOptions{})
	if err != nil {
		return err
	}

	record, err := parseResume(cmd.Context(), analyzer, parseInput)
	if err != nil {
		return err
	}

	if printer := verbosePrinter(); printer != nil {
		printer.PrintResumeRecord(record)
	}

	if err := checkSchema(schemafiles.ResumeRecord, record); err != nil {
		return err
	}
	if err := writeJSON(parseOutput, record); err != nil {
		return err
	}
	if parseOutput != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Successfully parsed resume\n")
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseOutput)
	}
	return nil
}

// parseResume runs loading, extraction, validation and entity extraction on a
// local path or an s3:// URI
func parseResume(ctx context.Context, analyzer *pipeline.Analyzer, location string) (*types.ResumeRecord, error) {
	var text string
	var err error
	if fetch.IsS3URI(location) {
		var doc *types.RawDocument
		doc, err = loadDocument(ctx, location, appConfig.S3)
		if err == nil {
			text, err = analyzer.LoadAndExtractText(doc.Content, doc.Filename)
		}
	} else {
		text, err = analyzer.LoadAndExtractFile(location)
	}
	if err != nil {
		return nil, analysisError(err)
	}
	return analyzer.ExtractEntities(text), nil
}
