package diag

import (
	"intlex/internal/source"
)

// Note attaches secondary context to a diagnostic, e.g. "first registered
// here" on a duplicate-id error.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a concrete text replacement inside a span.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction. It is data only; the CLI renders it, the
// tool never applies it.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is the central record every phase produces: a severity, a
// stable code, a message and the primary source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// New constructs a plain diagnostic.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// WithNote returns a copy of the diagnostic with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of the diagnostic with a suggested fix.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
