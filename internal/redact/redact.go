// Package redact strips PII from extracted resume text before it is stored
// or shown to anyone other than the applicant.
//
// This is lossy, best-effort, pattern-based redaction. The patterns are
// deliberately loose and will over-match (a date range can look like a phone
// number, an invoice number can look like an SSN); over-redaction is the
// accepted trade-off. Unusual PII formats can still slip through.
package redact

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Placeholder tokens. They contain no digits or '@', so no later pattern can
// match inside an earlier substitution.
const (
	EmailPlaceholder   = "[EMAIL_REDACTED]"
	PhonePlaceholder   = "[PHONE_REDACTED]"
	SSNPlaceholder     = "[SSN_REDACTED]"
	DOBPlaceholder     = "[DOB_REDACTED]"
	AddressPlaceholder = "[ADDRESS_REDACTED]"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Candidate phone spans: optional country code, then a 3-3-4 digit
	// grouping with common separators. Shaped so a bare SSN (3-2-4) is
	// not a candidate and stays for the SSN pass.
	phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)

	ssnRe = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	// Numeric dates plus "Month DD, YYYY", optionally labelled.
	dobRe = regexp.MustCompile(`(?i)\b(?:\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}` +
		`|(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?` +
		`|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2},?\s+\d{4})\b`)

	addressRe = regexp.MustCompile(`(?i)\b\d{1,6}\s+(?:[A-Za-z0-9'.\-]+\s+){1,4}` +
		`(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|place|pl|way|terrace|ter|circle|cir)\b\.?`)
)

// Redact applies the five substitutions in a fixed order: email, phone, SSN,
// date of birth, address. Each pass runs over the output of the previous one.
func Redact(text string) string {
	text = emailRe.ReplaceAllString(text, EmailPlaceholder)
	text = phoneRe.ReplaceAllStringFunc(text, redactPhone)
	text = ssnRe.ReplaceAllString(text, SSNPlaceholder)
	text = dobRe.ReplaceAllString(text, DOBPlaceholder)
	text = addressRe.ReplaceAllString(text, AddressPlaceholder)
	return text
}

// redactPhone classifies a candidate span with the phone-number library, then
// redacts it either way. The verdict is advisory: a span the library
// validates is certainly a phone number, a span it rejects may still be a
// malformed real one, and leaking it would be worse than blanking a stray
// digit run.
func redactPhone(candidate string) string {
	if LibraryValid(candidate) {
		return PhonePlaceholder
	}
	// Fail open toward redaction: failing to parse does not make the span
	// safe to keep.
	return PhonePlaceholder
}

// LibraryValid reports whether a span parses as a structurally valid phone
// number. Spans without an explicit country code are tried as US numbers.
func LibraryValid(candidate string) bool {
	region := ""
	if !strings.HasPrefix(candidate, "+") {
		region = "US"
	}
	num, err := phonenumbers.Parse(candidate, region)
	return err == nil && phonenumbers.IsValidNumber(num)
}
