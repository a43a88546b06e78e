package diag

import "intlex/internal/source"

// Reporter is the minimal contract phases use to emit diagnostics without
// coupling to storage. Implementations: BagReporter, NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a *Bag into a Reporter.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Warn is a shorthand for reporting a SevWarning diagnostic.
func Warn(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(New(SevWarning, code, primary, msg))
}

// Error is a shorthand for reporting a SevError diagnostic.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(New(SevError, code, primary, msg))
}
