package ingestion

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a resume path does not resolve to a readable file
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file not found: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError names the rejected extension and the accepted ones
type UnsupportedFormatError struct {
	Extension string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported file format %s: supported formats are %s", ext, strings.Join(e.Supported, ", "))
}

// ExtractionError wraps a failure of the underlying document library
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
