package source

import (
	"testing"
)

func TestToLineCol(t *testing.T) {
	content := []byte("first line\nsecond\n\nfourth")
	lineIdx := buildLineIndex(content)

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{name: "start of file", off: 0, want: LineCol{Line: 1, Col: 1}},
		{name: "middle of first line", off: 6, want: LineCol{Line: 1, Col: 7}},
		{name: "start of second line", off: 11, want: LineCol{Line: 2, Col: 1}},
		{name: "middle of second line", off: 14, want: LineCol{Line: 2, Col: 4}},
		{name: "start of empty line", off: 18, want: LineCol{Line: 3, Col: 1}},
		{name: "start of last line", off: 19, want: LineCol{Line: 4, Col: 1}},
		{name: "end of last line", off: 24, want: LineCol{Line: 4, Col: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLineCol(lineIdx, tt.off)
			if got != tt.want {
				t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestToLineCol_SingleLine(t *testing.T) {
	got := toLineCol(nil, 7)
	want := LineCol{Line: 1, Col: 8}
	if got != want {
		t.Errorf("toLineCol(7) = %+v, want %+v", got, want)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantChanged bool
	}{
		{name: "no carriage returns", in: "a\nb\n", want: "a\nb\n", wantChanged: false},
		{name: "crlf pairs", in: "a\r\nb\r\n", want: "a\nb\n", wantChanged: true},
		{name: "lone cr preserved", in: "a\rb", want: "a\rb", wantChanged: false},
		{name: "mixed", in: "a\r\nb\rc\n", want: "a\nb\rc\n", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.want || changed != tt.wantChanged {
				t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v",
					tt.in, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	got, had := removeBOM(withBOM)
	if !had || string(got) != "hi" {
		t.Errorf("removeBOM = %q, %v; want %q, true", got, had, "hi")
	}

	got, had = removeBOM([]byte("hi"))
	if had || string(got) != "hi" {
		t.Errorf("removeBOM without BOM = %q, %v", got, had)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("src/pages/Home.jsx"); got != "Home" {
		t.Errorf("BaseName = %q, want %q", got, "Home")
	}
}
