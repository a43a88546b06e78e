package icu

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "Hello world", want: "Hello world"},
		{name: "simple argument", in: "Hello {name}", want: "Hello {name}"},
		{name: "spaced argument", in: "Hello { name }", want: "Hello { name }"},
		{
			name: "number argument with style",
			in:   "Total: {amount, number, ::currency/EUR}",
			want: "Total: {amount, number, ::currency/EUR}",
		},
		{
			name: "plural",
			in:   "{count, plural, one {# item} other {# items}}",
			want: "{count, plural, one {# item} other {# items}}",
		},
		{
			name: "plural with exact match",
			in:   "{count, plural, =0 {none} other {some}}",
			want: "{count, plural, =0 {none} other {some}}",
		},
		{
			name: "select with nested argument",
			in:   "{gender, select, female {She is {age}} other {They are {age}}}",
			want: "{gender, select, female {She is {age}} other {They are {age}}}",
		},
		{name: "escaped brace", in: "literal '{' brace", want: "literal '{' brace"},
		{name: "double apostrophe", in: "it''s fine", want: "it''s fine"},
		{name: "lone apostrophe", in: "rock 'n roll", want: "rock 'n roll"},
		{
			name: "whitespace collapsed",
			in:   "  Hello\n    {name} ",
			want: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		reason string
	}{
		{name: "unclosed brace", in: "Hello {name", reason: "unclosed argument brace"},
		{name: "unmatched close", in: "oops } here", reason: "unmatched '}'"},
		{name: "empty argument", in: "Hello {}", reason: "expected argument name"},
		{name: "bad argument name", in: "Hello {first name}", reason: "expected ',' or '}'"},
		{name: "unknown type", in: "{n, integer}", reason: "unknown argument type"},
		{name: "plural without branches", in: "{n, plural}", reason: "missing its branches"},
		{name: "plural missing other", in: "{n, plural, one {x}}", reason: `missing the "other" branch`},
		{name: "branch without body", in: "{n, plural, other}", reason: "expected '{' after selector"},
		{name: "unclosed branch", in: "{n, plural, other {x}", reason: "unclosed argument brace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			if err == nil {
				t.Fatalf("Normalize(%q) succeeded, want error containing %q", tt.in, tt.reason)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if !strings.Contains(perr.Reason, tt.reason) {
				t.Errorf("reason = %q, want it to contain %q", perr.Reason, tt.reason)
			}
		})
	}
}

func TestNormalize_NFC(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) must normalize to U+00E9.
	in := "café"
	got, err := Normalize(in)
	if err != nil {
		t.Fatal(err)
	}
	if got != "café" {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, "café")
	}
}
