package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-checker/internal/ingestion"
	"github.com/jonathan/resume-checker/internal/validation"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and validate the plain text of a PDF or DOCX resume",
	Long: `Load a PDF or DOCX resume from a local path or an s3:// URI, extract its text and
check that it looks like a resume. The text is printed to stdout, or written to
<name>.txt in the --out directory together with <name>.meta.json.`,
	RunE: runExtract,
}

var (
	extractInput  string
	extractOutDir string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path or s3:// URI of the resume (required)")
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory for the text and metadata files (default: print text to stdout)")

	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	doc, err := loadDocument(ctx, extractInput, appConfig.S3)
	if err != nil {
		return analysisError(err)
	}
	text, err := ingestion.ExtractText(doc)
	if err != nil {
		return analysisError(err)
	}
	appLogger.Debug("extracted text",
		zap.String("filename", doc.Filename),
		zap.Int("characters", len([]rune(text))))

	report := validation.Inspect(text)
	if printer := verbosePrinter(); printer != nil {
		printer.PrintValidationReport(report)
	}
	if err := report.Err(); err != nil {
		return analysisError(err)
	}

	if extractOutDir == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}

	if err := ingestion.WriteOutput(extractOutDir, text, ingestion.NewMetadata(doc, text)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Successfully extracted %s\n", doc.Filename)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", extractOutDir)
	return nil
}
