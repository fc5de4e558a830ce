package parser

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestParagraphText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "two paragraphs",
			content: `<w:body><w:p w:rsidR="0"><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
				`<w:p w:rsidR="0"><w:r><w:t>Senior Engineer</w:t></w:r></w:p></w:body>`,
			want: "Jane Doe\nSenior Engineer",
		},
		{
			name:    "runs concatenated within a paragraph",
			content: `<w:p w:a="b"><w:r><w:t>Go, </w:t></w:r><w:r><w:t xml:space="preserve">Python</w:t></w:r></w:p>`,
			want:    "Go, Python",
		},
		{
			name:    "empty paragraphs skipped",
			content: `<w:p w:a="b"><w:r><w:t>Skills</w:t></w:r></w:p><w:p/><w:p w:a="b"></w:p>`,
			want:    "Skills",
		},
		{
			name:    "entities unescaped",
			content: `<w:p w:a="b"><w:r><w:t>C&amp;C++ &lt;generics&gt;</w:t></w:r></w:p>`,
			want:    "C&C++ <generics>",
		},
		{
			name:    "no text at all",
			content: `<w:body><w:sectPr></w:sectPr></w:body>`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paragraphText(tt.content); got != tt.want {
				t.Errorf("paragraphText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	if _, err := ExtractText("txt", []byte("plain text")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

// emptyPagePDF assembles a valid single-page PDF whose page carries an empty
// content stream, the shape a scanned image-only resume degrades to once the
// image data is absent. Offsets are computed from the buffer so the xref
// table is exact.
func emptyPagePDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 5)
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>")
	writeObj(4, "<< /Length 0 >>\nstream\n\nendstream")

	xref := buf.Len()
	buf.WriteString("xref\n0 5\n")
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n <= 4; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 5 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

func TestExtractText_EmptyPDF(t *testing.T) {
	text, err := ExtractText("pdf", emptyPagePDF())
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "" {
		t.Errorf("ExtractText() = %q, want empty string", text)
	}
}

func TestExtractText_MalformedBinaries(t *testing.T) {
	junk := []byte(strings.Repeat("not a document", 100))

	if _, err := ExtractText("pdf", junk); err == nil {
		t.Error("expected parse error for malformed pdf")
	}
	if _, err := ExtractText("docx", junk); err == nil {
		t.Error("expected parse error for malformed docx")
	}
}
