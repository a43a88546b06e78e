package diagfmt

import (
	"strings"
	"testing"

	"intlex/internal/diag"
	"intlex/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.jsx", []byte("const a = 1;\nconst id = 'greeting';\n"))
	bag := diag.NewBag(10)
	return bag, fs, id
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	bag, fs, id := testBag(t)
	// "'greeting'" on line 2, columns 12..22.
	sp := source.Span{File: id, Start: 24, End: 34}
	bag.Add(diag.New(diag.SevError, diag.ExtDuplicateID, sp, "duplicate message id"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "app.jsx:2:12: ERROR EXT_DUPLICATE_ID: duplicate message id") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "const id = 'greeting';") {
		t.Errorf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~~~~") {
		t.Errorf("missing caret underline:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	bag, fs, id := testBag(t)
	sp := source.Span{File: id, Start: 24, End: 34}
	d := diag.New(diag.SevError, diag.ExtBadEscape, sp, "message contains backslashes").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "declared here").
		WithFix("wrap the attribute value in an expression container")
	bag.Add(d)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := sb.String()

	if !strings.Contains(out, "note: declared here") {
		t.Errorf("missing note:\n%s", out)
	}
	if !strings.Contains(out, "fix: wrap the attribute value") {
		t.Errorf("missing fix:\n%s", out)
	}
}

func TestPrettyEmptySpanSkipsContext(t *testing.T) {
	bag, fs, id := testBag(t)
	bag.Add(diag.New(diag.SevError, diag.ParseFailed, source.Span{File: id}, "failed to load file"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "app.jsx:1:1: ERROR PARSE_FAILED: failed to load file") {
		t.Errorf("missing header:\n%s", out)
	}
	if strings.Contains(out, "^") {
		t.Errorf("empty span should have no caret:\n%s", out)
	}
}
