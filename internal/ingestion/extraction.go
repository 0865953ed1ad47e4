package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jonathan/resume-checker/internal/types"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	docxBreakPattern = regexp.MustCompile(`<w:br\s*/>|<w:cr\s*/>`)
	docxTagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// ExtractText returns the cleaned plain text of a PDF or DOCX document
func ExtractText(doc *types.RawDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var (
		text string
		err  error
	)
	switch doc.Format {
	case types.FormatPDF:
		text, err = extractPDF(doc.Content)
	case types.FormatDOCX:
		text, err = extractDOCX(doc.Content)
	default:
		return "", &UnsupportedFormatError{Extension: "." + string(doc.Format), Supported: supportedExtensions()}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// extractPDF joins the text of every page in page order, one page per line group
func extractPDF(content []byte) (text string, err error) {
	// the pdf library panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to open document", Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: "pdf", Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX reduces the document body XML to text, one paragraph per line
func extractDOCX(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Message: "failed to open document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

func docxXMLToText(body string) string {
	body = strings.ReplaceAll(body, "</w:p>", "\n")
	body = strings.ReplaceAll(body, "<w:tab/>", "\t")
	body = docxBreakPattern.ReplaceAllString(body, "\n")
	body = docxTagPattern.ReplaceAllString(body, "")
	return html.UnescapeString(body)
}
