// Package diagfmt renders diagnostics for humans and machines.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"intlex/internal/diag"
	"intlex/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan, color.Bold)
	noteColor  = color.New(color.FgBlue)
	caretColor = color.New(color.FgGreen, color.Bold)
)

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() in order (call bag.Sort() first). For each diagnostic it
// prints:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline for the span, then
// notes and fix titles in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeader(w, fs, d, opts)
		printContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printNote(w, fs, note, opts)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  fix: %s\n", fix.Title)
			}
		}
	}
}

func sevPrinter(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func printHeader(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = sevPrinter(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", location(fs, d.Primary, opts.PathMode), sev, d.Code, d.Message)
}

func printNote(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}
	fmt.Fprintf(w, "  %s: %s: %s\n", location(fs, note.Span, opts.PathMode), label, note.Msg)
	printContext(w, fs, note.Span, opts)
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	path := f.Path
	switch mode {
	case PathModeBasename:
		path = source.BaseName(path)
	case PathModeAuto:
		if rel, err := source.RelativePath(path, fs.BaseDir()); err == nil {
			path = rel
		}
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// printContext shows the span's first source line with a caret underline.
func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if sp.Empty() || int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	width := uint32(1)
	if end.Line == start.Line && end.Col > start.Col {
		width = end.Col - start.Col
	}
	underline := "^" + strings.Repeat("~", int(width-1))
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(line, "\t", " "))
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col-1)), underline)
}
