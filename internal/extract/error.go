package extract

import (
	"fmt"

	"intlex/internal/diag"
	"intlex/internal/source"
)

// Error is a fatal extraction failure for the current compilation unit.
// It carries the diagnostic code and span so the driver can render it with
// file and line attached.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
	Fix  *diag.Fix
	// FirstSeen points at the first registration on duplicate-id errors.
	FirstSeen *source.Span
}

func (e *Error) Error() string {
	return e.Msg
}

// Diagnostic converts the error into its SevError diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.New(diag.SevError, e.Code, e.Span, e.Msg)
	if e.FirstSeen != nil {
		d = d.WithNote(*e.FirstSeen, "first registered here")
	}
	if e.Fix != nil {
		d.Fixes = append(d.Fixes, *e.Fix)
	}
	return d
}

func errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
