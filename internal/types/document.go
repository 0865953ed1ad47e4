// Package types provides type definitions for structured data used throughout the resume-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Format identifies a supported resume file format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// SupportedFormats lists every format the loader accepts, in display order
var SupportedFormats = []Format{FormatPDF, FormatDOCX}

// Extension returns the file extension (with leading dot) for the format
func (f Format) Extension() string {
	return "." + string(f)
}

// RawDocument is an uploaded resume file before text extraction.
// It is created by the loader and discarded after extraction.
type RawDocument struct {
	Filename string `json:"filename"`
	Format   Format `json:"format"`
	ByteSize int64  `json:"byte_size"`
	Content  []byte `json:"-"`
}
