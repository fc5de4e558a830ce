package redact

import (
	"strings"
	"testing"
)

func TestRedact_Email(t *testing.T) {
	got := Redact("Contact: jane.doe+jobs@example.co.uk for details")
	want := "Contact: " + EmailPlaceholder + " for details"
	if got != want {
		t.Errorf("Redact() = %q, want %q", got, want)
	}
}

func TestRedact_Phone(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "e164 with formatting", input: "Call +1 (212) 555-0137 anytime"},
		{name: "dashed US number", input: "Call 212-555-0137 anytime"},
		{name: "dotted number", input: "Call 212.555.0137 anytime"},
		{name: "bare ten digits", input: "Call 2125550137 anytime"},
		// Library-invalid but phone-shaped: still redacted.
		{name: "implausible number", input: "Call 000-000-0000 anytime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redact(tt.input)
			if !strings.Contains(got, PhonePlaceholder) {
				t.Errorf("Redact(%q) = %q, phone not redacted", tt.input, got)
			}
			if strings.ContainsAny(got, "0123456789") {
				t.Errorf("Redact(%q) = %q, digits leaked", tt.input, got)
			}
		})
	}
}

func TestRedact_SSN(t *testing.T) {
	got := Redact("SSN: 123-45-6789")
	want := "SSN: " + SSNPlaceholder
	if got != want {
		t.Errorf("Redact() = %q, want %q", got, want)
	}
}

func TestRedact_DOB(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "numeric slash date",
			input: "Date of Birth: 04/12/1989",
			want:  "Date of Birth: " + DOBPlaceholder,
		},
		{
			name:  "numeric dash date",
			input: "DOB: 4-12-89",
			want:  "DOB: " + DOBPlaceholder,
		},
		{
			name:  "textual month",
			input: "Born April 12, 1989 in Ohio",
			want:  "Born " + DOBPlaceholder + " in Ohio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.input); got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedact_Address(t *testing.T) {
	got := Redact("Lives at 1600 Pennsylvania Avenue, works downtown")
	want := "Lives at " + AddressPlaceholder + ", works downtown"
	if got != want {
		t.Errorf("Redact() = %q, want %q", got, want)
	}
}

func TestRedact_FullResume(t *testing.T) {
	input := "Jane Doe\n" +
		"jane@example.com | +1 212 555 0137\n" +
		"123 Main Street, Springfield\n" +
		"SSN 123-45-6789, born 01/02/1990\n" +
		"Led a team of 12 engineers"
	got := Redact(input)

	for _, placeholder := range []string{
		EmailPlaceholder, PhonePlaceholder, SSNPlaceholder, DOBPlaceholder, AddressPlaceholder,
	} {
		if !strings.Contains(got, placeholder) {
			t.Errorf("output missing %s:\n%s", placeholder, got)
		}
	}
	for _, leaked := range []string{"jane@example.com", "555", "123-45-6789", "01/02/1990", "Main Street"} {
		if strings.Contains(got, leaked) {
			t.Errorf("PII %q leaked:\n%s", leaked, got)
		}
	}
	// Non-PII content survives.
	if !strings.Contains(got, "Led a team of 12 engineers") {
		t.Errorf("non-PII text damaged:\n%s", got)
	}
}

func TestRedact_IdempotentOnPlaceholders(t *testing.T) {
	once := Redact("Reach me: jane@example.com / 212-555-0137 / 123-45-6789, DOB 01/02/1990, 42 Oak Lane")
	twice := Redact(once)
	if once != twice {
		t.Errorf("second pass changed placeholder text:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestLibraryValid(t *testing.T) {
	if !LibraryValid("+1 212 555 0137") {
		t.Error("valid NANP number reported invalid")
	}
	if LibraryValid("000-000-0000") {
		t.Error("all-zero number reported valid")
	}
}
