package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/resume-checker/internal/ingestion"
	"github.com/jonathan/resume-checker/internal/jobs"
	"github.com/jonathan/resume-checker/internal/ranking"
	"github.com/jonathan/resume-checker/internal/validation"
)

// UserMessage maps an analysis error to a message suitable for the person who uploaded the document
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var notFound *ingestion.NotFoundError
	var unsupported *ingestion.UnsupportedFormatError
	var extraction *ingestion.ExtractionError
	var tooShort *validation.TooShortError
	var notResume *validation.NotAResumeError
	var missing *validation.MissingSectionsError
	var weights *ranking.WeightsError

	switch {
	case errors.As(err, &notFound):
		return "The file could not be found."
	case errors.As(err, &unsupported):
		return "Unsupported file format. Please upload a PDF or DOCX file."
	case errors.As(err, &extraction):
		return "We could not read any text from this document. Please upload a text-based PDF or DOCX file."
	case errors.As(err, &tooShort):
		return "The document is too short to be a resume. Please upload your complete resume."
	case errors.As(err, &notResume):
		return "The uploaded document does not appear to be a resume. Please upload a valid resume " +
			"containing education, work experience and skills sections."
	case errors.As(err, &missing):
		msg := "The document is missing key resume sections."
		if len(missing.Missing) > 0 {
			msg += " Not found: " + strings.Join(missing.Missing, ", ") + "."
		}
		return msg + " Please upload a valid resume."
	case errors.Is(err, jobs.ErrJobNotFound):
		return "The selected job could not be found."
	case errors.As(err, &weights):
		return "Invalid scoring weights: each weight must be between 0 and 1 and they must sum to 1."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The analysis was interrupted. Please try again."
	default:
		return "An unexpected error occurred while analyzing the resume."
	}
}

// IsRejection reports whether err means the document was rejected as a resume,
// as opposed to failing to load or process.
func IsRejection(err error) bool {
	var tooShort *validation.TooShortError
	var notResume *validation.NotAResumeError
	var missing *validation.MissingSectionsError
	return errors.As(err, &tooShort) || errors.As(err, &notResume) || errors.As(err, &missing)
}

// IsInputError reports whether err means the document itself could not be
// loaded or read: a missing file, an unsupported format or an unreadable body.
func IsInputError(err error) bool {
	var notFound *ingestion.NotFoundError
	var unsupported *ingestion.UnsupportedFormatError
	var extraction *ingestion.ExtractionError
	return errors.As(err, &notFound) || errors.As(err, &unsupported) || errors.As(err, &extraction)
}
