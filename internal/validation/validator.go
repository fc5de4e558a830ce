// Package validation checks uploaded resume files before anything else
// touches them: size bounds, declared extension, and the magic bytes that
// prove the content actually is what the extension claims.
package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Stable machine-readable error codes. Clients branch on these, so they are
// part of the API contract.
const (
	CodeFileTooSmall       = "file_too_small"
	CodeFileTooLarge       = "file_too_large"
	CodeInvalidFormat      = "invalid_format"
	CodeMissingExtension   = "missing_extension"
	CodeInvalidFileContent = "invalid_file_content"
	CodeDuplicateDetected  = "duplicate_detected"
)

const (
	// MinFileSize is inclusive, MaxFileSize exclusive.
	MinFileSize = 50 * 1024
	MaxFileSize = 10 * 1024 * 1024
)

// Magic-byte signatures per declared extension. DOCX is a ZIP container, so
// it starts with the ZIP local-file-header signature.
var magicBytes = map[string][]byte{
	"pdf":  []byte("%PDF"),
	"docx": {'P', 'K', 0x03, 0x04},
}

// FieldError is a single user-facing validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is what the upload handler gets back: one overall verdict, the
// per-check booleans, the coded errors, and the two values computed along the
// way (digest, detected extension) so callers don't re-derive them.
type Result struct {
	Valid     bool         `json:"valid"`
	SizeOK    bool         `json:"size_ok"`
	FormatOK  bool         `json:"format_ok"`
	ContentOK bool         `json:"content_ok"`
	Errors    []FieldError `json:"errors,omitempty"`
	Digest    string       `json:"digest"`
	Extension string       `json:"extension"`
}

// ValidateFile runs the size, extension and magic-byte checks over an uploaded
// file. Pure function: no side effects, safe to call from anywhere.
func ValidateFile(data []byte, filename string) Result {
	res := Result{
		SizeOK:    true,
		FormatOK:  true,
		ContentOK: true,
		Digest:    ContentDigest(data),
	}

	if len(data) < MinFileSize {
		res.SizeOK = false
		res.Errors = append(res.Errors, FieldError{
			Field:   "resume",
			Code:    CodeFileTooSmall,
			Message: fmt.Sprintf("file is %d bytes, minimum is %d bytes (50 KiB)", len(data), MinFileSize),
		})
	} else if len(data) >= MaxFileSize {
		res.SizeOK = false
		res.Errors = append(res.Errors, FieldError{
			Field:   "resume",
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("file is %d bytes, maximum is %d bytes (10 MiB)", len(data), MaxFileSize),
		})
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch {
	case ext == "":
		res.FormatOK = false
		res.Errors = append(res.Errors, FieldError{
			Field:   "resume",
			Code:    CodeMissingExtension,
			Message: "filename has no extension",
		})
	case magicBytes[ext] == nil:
		res.FormatOK = false
		res.Errors = append(res.Errors, FieldError{
			Field:   "resume",
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("unsupported file format %q, expected pdf or docx", ext),
		})
	default:
		res.Extension = ext
		if !bytes.HasPrefix(data, magicBytes[ext]) {
			res.ContentOK = false
			res.Errors = append(res.Errors, FieldError{
				Field:   "resume",
				Code:    CodeInvalidFileContent,
				Message: fmt.Sprintf("file content does not match declared %s format", ext),
			})
		}
	}

	res.Valid = res.SizeOK && res.FormatOK && res.ContentOK
	return res
}
