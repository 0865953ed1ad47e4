// Package ingestion loads resume documents and turns them into clean plain text.
package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-checker/internal/types"
)

// DetectFormat maps a filename to a supported format by its extension, case-insensitively
func DetectFormat(filename string) (types.Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range types.SupportedFormats {
		if ext == format.Extension() {
			return format, nil
		}
	}
	return "", &UnsupportedFormatError{Extension: filepath.Ext(filename), Supported: supportedExtensions()}
}

func supportedExtensions() []string {
	exts := make([]string, 0, len(types.SupportedFormats))
	for _, format := range types.SupportedFormats {
		exts = append(exts, format.Extension())
	}
	return exts
}

// LoadFile reads a resume from disk
func LoadFile(path string) (*types.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Cause: err}
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Cause: fmt.Errorf("path is a directory")}
	}

	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return LoadBytes(content, filepath.Base(path))
}

// LoadBytes wraps uploaded bytes in a RawDocument, taking the format from the filename
func LoadBytes(data []byte, filename string) (*types.RawDocument, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	return &types.RawDocument{
		Filename: filename,
		Format:   format,
		ByteSize: int64(len(data)),
		Content:  data,
	}, nil
}
