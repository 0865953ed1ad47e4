// Package schemas embeds the JSON Schemas for the records the resume-checker reads and writes.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Schema names accepted by Load
const (
	JobCatalog   = "job_catalog"
	JobRanking   = "job_ranking"
	ResumeRecord = "resume_record"
	ScoreRecord  = "score_record"
)

const suffix = ".schema.json"

//go:embed *.schema.json
var files embed.FS

// Load returns the schema document for name. Both "score_record" and
// "score_record.schema.json" are accepted.
func Load(name string) ([]byte, error) {
	file := strings.TrimSuffix(name, suffix) + suffix
	data, err := files.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return data, nil
}

// Names lists the embedded schema names in sorted order.
func Names() []string {
	matches, _ := fs.Glob(files, "*"+suffix)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, suffix))
	}
	sort.Strings(names)
	return names
}

// Has reports whether name refers to an embedded schema.
func Has(name string) bool {
	_, err := fs.Stat(files, strings.TrimSuffix(name, suffix)+suffix)
	return err == nil
}
