package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "comma separated",
			text:     "Skills\nPython, Java, SQL",
			expected: []string{"Python", "Java", "SQL"},
		},
		{
			name:     "heading with colon on the same line",
			text:     "Skills: Go; Rust | C++",
			expected: []string{"Go", "Rust", "C++"},
		},
		{
			name:     "bullets and newlines",
			text:     "Technical Skills\n• Docker\n● Terraform\n- AWS Lambda\n* GCP",
			expected: []string{"Docker", "Terraform", "AWS Lambda", "GCP"},
		},
		{
			name:     "categories",
			text:     "Skills\nProgramming and Tools: Go, Python\nCloud: AWS, GCP",
			expected: []string{"Go", "Python", "AWS", "GCP"},
		},
		{
			name:     "case-insensitive dedupe keeps first casing",
			text:     "Skills\nPython, python, PYTHON, SQL, sql",
			expected: []string{"Python", "SQL"},
		},
		{
			name:     "length and word limits",
			text:     "Skills\nC, R, Go, " + strings.Repeat("x", 51) + ", one two three four five six seven",
			expected: []string{"Go"},
		},
		{
			name:     "stops at next heading",
			text:     "Skills\nGo, SQL\nProjects\nChess engine, Blog",
			expected: []string{"Go", "SQL"},
		},
		{
			name:     "no section",
			text:     "Experience\nEngineer",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSkills(tt.text, asciiLower(tt.text)))
		})
	}
}

func TestIsHeading(t *testing.T) {
	assert.True(t, isHeading("skills"))
	assert.True(t, isHeading("core competencies"))
	assert.True(t, isHeading("projects"))
	assert.False(t, isHeading("python"))
}
