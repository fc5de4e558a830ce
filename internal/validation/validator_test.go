package validation

import (
	"testing"
)

// pdfBytes returns n bytes that start with the PDF signature.
func pdfBytes(n int) []byte {
	b := make([]byte, n)
	copy(b, "%PDF-1.7\n")
	return b
}

func docxBytes(n int) []byte {
	b := make([]byte, n)
	copy(b, []byte{'P', 'K', 0x03, 0x04})
	return b
}

func hasCode(errs []FieldError, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestValidateFile_SizeBounds(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantOK   bool
		wantCode string
	}{
		{name: "one byte under minimum", size: MinFileSize - 1, wantOK: false, wantCode: CodeFileTooSmall},
		{name: "exactly minimum", size: MinFileSize, wantOK: true},
		{name: "one byte under maximum", size: MaxFileSize - 1, wantOK: true},
		{name: "exactly maximum", size: MaxFileSize, wantOK: false, wantCode: CodeFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateFile(pdfBytes(tt.size), "resume.pdf")
			if res.SizeOK != tt.wantOK {
				t.Errorf("SizeOK = %v, want %v for size %d", res.SizeOK, tt.wantOK, tt.size)
			}
			if res.Valid != tt.wantOK {
				t.Errorf("Valid = %v, want %v for size %d", res.Valid, tt.wantOK, tt.size)
			}
			if tt.wantCode != "" && !hasCode(res.Errors, tt.wantCode) {
				t.Errorf("expected error code %s, got %v", tt.wantCode, res.Errors)
			}
		})
	}
}

func TestValidateFile_MagicBytes(t *testing.T) {
	// Valid PDF content under the right extension passes.
	res := ValidateFile(pdfBytes(MinFileSize), "resume.pdf")
	if !res.Valid {
		t.Fatalf("expected valid result, got errors %v", res.Errors)
	}
	if res.Extension != "pdf" {
		t.Errorf("Extension = %q, want pdf", res.Extension)
	}

	// The same bytes renamed .docx must fail the content check, not the
	// format check.
	res = ValidateFile(pdfBytes(MinFileSize), "resume.docx")
	if res.Valid {
		t.Fatal("expected PDF bytes under .docx extension to be rejected")
	}
	if !res.FormatOK {
		t.Error("renamed file should pass the extension check")
	}
	if res.ContentOK {
		t.Error("renamed file should fail the content check")
	}
	if !hasCode(res.Errors, CodeInvalidFileContent) {
		t.Errorf("expected %s, got %v", CodeInvalidFileContent, res.Errors)
	}

	res = ValidateFile(docxBytes(MinFileSize), "resume.docx")
	if !res.Valid {
		t.Fatalf("expected valid docx, got errors %v", res.Errors)
	}
}

func TestValidateFile_Extension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantCode string
	}{
		{name: "no extension", filename: "resume", wantCode: CodeMissingExtension},
		{name: "unsupported extension", filename: "resume.txt", wantCode: CodeInvalidFormat},
		{name: "unsupported doc", filename: "resume.doc", wantCode: CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateFile(pdfBytes(MinFileSize), tt.filename)
			if res.Valid {
				t.Fatal("expected rejection")
			}
			if res.FormatOK {
				t.Error("FormatOK should be false")
			}
			if !hasCode(res.Errors, tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, res.Errors)
			}
		})
	}
}

func TestValidateFile_UppercaseExtension(t *testing.T) {
	res := ValidateFile(pdfBytes(MinFileSize), "Resume.PDF")
	if !res.Valid {
		t.Fatalf("uppercase extension should be accepted, got %v", res.Errors)
	}
}

func TestValidateFile_ReportsAllFailures(t *testing.T) {
	// Too small AND wrong content: both errors must be reported.
	bad := make([]byte, 10)
	res := ValidateFile(bad, "resume.pdf")
	if res.Valid {
		t.Fatal("expected rejection")
	}
	if !hasCode(res.Errors, CodeFileTooSmall) || !hasCode(res.Errors, CodeInvalidFileContent) {
		t.Errorf("expected both size and content errors, got %v", res.Errors)
	}
	if res.Digest == "" {
		t.Error("digest should be computed even for invalid files")
	}
}
