package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_AddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.jsx", []byte("const a = 1;\n"))

	f := fs.Get(id)
	if f.Path != "test.jsx" {
		t.Errorf("Path = %q, want %q", f.Path, "test.jsx")
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if len(f.LineIdx) != 1 {
		t.Errorf("LineIdx len = %d, want 1", len(f.LineIdx))
	}
}

func TestFileSet_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.jsx")
	if err := os.WriteFile(path, []byte("line one\r\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "line one\nline two\n" {
		t.Errorf("content not CRLF-normalized: %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.js", []byte("alpha\nbeta\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 10})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 5}) {
		t.Errorf("end = %+v", end)
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dir/x.js", nil)

	if _, ok := fs.GetByPath("dir/x.js"); !ok {
		t.Error("expected to find dir/x.js")
	}
	if _, ok := fs.GetByPath("dir/y.js"); ok {
		t.Error("did not expect to find dir/y.js")
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.js", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{line: 0, want: ""},
		{line: 1, want: "one"},
		{line: 2, want: "two"},
		{line: 3, want: "three"},
		{line: 4, want: ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
