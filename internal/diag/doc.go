// Package diag defines the diagnostic model shared by the parser, the
// extraction core and the driver.
//
// Diagnostic is the central record: Severity (info / warning / error), a
// stable Code, a message and a primary source.Span, optionally extended
// with Notes (secondary spans) and Fixes (suggested edits, data only).
//
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter aggregates into a Bag, which supports sorting, merging and
// deduplication for deterministic CLI output. Rendering lives in
// internal/diagfmt.
//
// Extraction warnings are recoverable by contract: the offending property
// or usage is dropped and the unit continues. Errors are fatal to the unit
// and suppress its catalog.
package diag
