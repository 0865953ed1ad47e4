package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-checker/internal/types"
)

// Metadata describes an extracted resume document
type Metadata struct {
	Filename   string       `json:"filename"`
	Format     types.Format `json:"format"`
	ByteSize   int64        `json:"byte_size"`
	Timestamp  string       `json:"timestamp"`   // RFC3339 format
	Hash       string       `json:"hash"`        // SHA256 hex digest of the raw document bytes
	TextLength int          `json:"text_length"` // extracted text length in characters
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(doc *types.RawDocument, text string) *Metadata {
	return &Metadata{
		Filename:   doc.Filename,
		Format:     doc.Format,
		ByteSize:   doc.ByteSize,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(doc.Content),
		TextLength: len([]rune(text)),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
