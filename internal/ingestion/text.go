package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// lineBreaks maps the page and line separators PDF and DOCX extraction emit onto plain newlines
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n",
	"\u00a0", " ",
)

// bulletPrefixes are the list markers kept verbatim, including their spacing
var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "◦ ", "▪ "}

// maxBlankLines is the longest run of empty lines CleanText keeps
const maxBlankLines = 1

// CleanText normalizes extracted document text while keeping its line structure:
// one newline style, no trailing spaces, collapsed inner spacing on prose lines,
// and at most one empty line between blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(lineBreaks.Replace(content), "\n")
	cleaned := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = cleanLine(line)
		if line == "" {
			blank++
			if blank > maxBlankLines {
				continue
			}
		} else {
			blank = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// cleanLine trims one line. Bullets keep their text as-is; other lines keep
// their indentation and collapse inner whitespace.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return ""
	}

	indent := line[:len(line)-len(body)]
	if isBulletLine(body) {
		return indent + body
	}
	return indent + whitespacePattern.ReplaceAllString(body, " ")
}

func isBulletLine(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// WriteOutput writes the extracted text and its metadata next to each other in outDir
func WriteOutput(outDir string, text string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(metadata.Filename, filepath.Ext(metadata.Filename))
	if base == "" {
		base = "resume"
	}

	textPath := filepath.Join(outDir, base+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaPath := filepath.Join(outDir, base+".meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
