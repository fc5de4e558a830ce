// Package parser extracts plain text from uploaded resume binaries.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractText pulls the visible text out of a resume. ext is the detected
// extension from validation ("pdf" or "docx"). An empty string with a nil
// error is a valid result: image-only PDFs have nothing to extract and
// downstream treats that as a low-value submission, not a failure. Malformed
// binaries return an error.
func ExtractText(ext string, data []byte) (string, error) {
	switch ext {
	case "pdf":
		return extractPDF(data)
	case "docx":
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("unsupported resume format: %s", ext)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// A page that fails text extraction contributes nothing rather
		// than failing the whole document.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, "\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent()), nil
}

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>|<w:p/>`)
	runTextRe   = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	xmlUnescape = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
)

// paragraphText flattens WordprocessingML into plain text: one line per
// non-empty paragraph, run texts concatenated within a paragraph.
func paragraphText(content string) string {
	var lines []string
	for _, p := range paragraphRe.FindAllString(content, -1) {
		var sb strings.Builder
		for _, m := range runTextRe.FindAllStringSubmatch(p, -1) {
			sb.WriteString(xmlUnescape.Replace(m[1]))
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
