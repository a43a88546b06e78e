package parser

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"intlex/internal/extract"
)

// evalDepthLimit bounds identifier chasing through const bindings.
const evalDepthLimit = 8

// Evaluate attempts constant evaluation of an expression node. Confident
// only for literals, substitution-free template strings, parenthesized
// expressions, string concatenation of constants, and identifiers bound
// by a file-level const with a constant initializer.
func (u *Unit) Evaluate(n extract.Node) extract.Evaluation {
	ts := u.unwrapNode(n)
	if ts == nil {
		return extract.NotConfident
	}
	return u.eval(ts, 0)
}

func (u *Unit) eval(ts *sitter.Node, depth int) extract.Evaluation {
	if depth > evalDepthLimit {
		return extract.NotConfident
	}
	switch ts.Type() {
	case "string":
		if s, ok := u.stringValue(ts); ok {
			return extract.Confident(s)
		}
	case "template_string":
		if s, ok := u.templateValue(ts); ok {
			return extract.Confident(s)
		}
	case "number":
		if f, err := strconv.ParseFloat(u.text(ts), 64); err == nil {
			return extract.Confident(f)
		}
	case "true":
		return extract.Confident(true)
	case "false":
		return extract.Confident(false)
	case "null":
		return extract.Confident(nil)
	case "parenthesized_expression":
		if ts.NamedChildCount() == 1 {
			return u.eval(ts.NamedChild(0), depth+1)
		}
	case "binary_expression":
		return u.evalConcat(ts, depth)
	case "identifier":
		if init, ok := u.consts[u.text(ts)]; ok {
			return u.eval(init, depth+1)
		}
	}
	return extract.NotConfident
}

// evalConcat folds "a" + "b" when both sides are confident strings.
func (u *Unit) evalConcat(ts *sitter.Node, depth int) extract.Evaluation {
	op := ts.ChildByFieldName("operator")
	if op == nil || u.text(op) != "+" {
		return extract.NotConfident
	}
	left := u.eval(ts.ChildByFieldName("left"), depth+1)
	right := u.eval(ts.ChildByFieldName("right"), depth+1)
	if !left.Confident || !right.Confident {
		return extract.NotConfident
	}
	ls, lok := left.Value.(string)
	rs, rok := right.Value.(string)
	if !lok || !rok {
		return extract.NotConfident
	}
	return extract.Confident(ls + rs)
}

// stringValue decodes a string literal node. Markup attribute strings keep
// their backslashes verbatim: JSX does not process escape sequences, and
// that distinction is what the wrap-in-container diagnostic relies on.
func (u *Unit) stringValue(ts *sitter.Node) (string, bool) {
	if ts.Type() != "string" {
		return "", false
	}
	raw := u.text(ts)
	if len(raw) < 2 {
		return "", false
	}
	body := raw[1 : len(raw)-1]
	if parent := ts.Parent(); parent != nil && parent.Type() == "jsx_attribute" {
		return body, true
	}
	return unescape(body), true
}

// templateValue decodes a template string with no substitutions.
func (u *Unit) templateValue(ts *sitter.Node) (string, bool) {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if ts.NamedChild(i).Type() == "template_substitution" {
			return "", false
		}
	}
	raw := u.text(ts)
	if len(raw) < 2 {
		return "", false
	}
	return unescape(raw[1 : len(raw)-1]), true
}

// unescape resolves JavaScript escape sequences in a literal body.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			sb.WriteByte('x')
		case 'u':
			if r, consumed, ok := unescapeUnicode(s[i:]); ok {
				sb.WriteRune(r)
				i += consumed - 1
				continue
			}
			sb.WriteByte('u')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// unescapeUnicode handles uXXXX and u{XXXXXX}, returning the rune and how
// many bytes starting at 'u' were consumed.
func unescapeUnicode(s string) (rune, int, bool) {
	if len(s) >= 2 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	if len(s) < 5 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:5], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), 5, true
}
