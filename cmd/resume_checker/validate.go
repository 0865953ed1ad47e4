package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-checker/internal/schemas"
	schemafiles "github.com/jonathan/resume-checker/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long: fmt.Sprintf(`Validate a JSON file against a JSON Schema. --schema accepts either the name of a
built-in schema (%s) or a path to a schema file.`, strings.Join(schemafiles.Names(), ", ")),
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Built-in schema name or path to a schema file (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate (required)")

	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var err error
	if schemafiles.Has(validateSchema) {
		var data []byte
		data, err = os.ReadFile(validateJSON)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		err = schemas.Validate(validateSchema, data)
	} else {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	}

	if err == nil {
		_, _ = fmt.Fprintln(os.Stdout, "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(os.Stderr, "Validation failed:")
		for _, fieldErr := range validationErr.Errors {
			_, _ = fmt.Fprintf(os.Stderr, "  %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		return fmt.Errorf("%s does not match %s", validateJSON, validateSchema)
	}
	return err
}
