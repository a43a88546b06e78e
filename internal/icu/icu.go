// Package icu validates the ICU MessageFormat placeholder syntax used in
// default messages and produces the normalized form stored in catalogs.
//
// The accepted grammar is the subset translation tooling consumes:
// literal text, apostrophe escaping ('{, '', '}), simple arguments
// ({name}), formatted arguments ({name, number, percent}) and branching
// arguments ({count, plural, one {..} other {..}}). Branch sub-messages
// nest recursively.
package icu

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ParseError describes why a message failed placeholder validation.
// Offset is a byte position into the normalized text.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid message syntax at offset %d: %s", e.Offset, e.Reason)
}

// argument types the validator recognizes after the first comma.
var argTypes = map[string]bool{
	"number":        true,
	"date":          true,
	"time":          true,
	"plural":        true,
	"selectordinal": true,
	"select":        true,
}

// branchingTypes take selector {submessage} branches instead of a style.
var branchingTypes = map[string]bool{
	"plural":        true,
	"selectordinal": true,
	"select":        true,
}

// Normalize validates text as an ICU message and returns its normal form:
// NFC, runs of whitespace collapsed to a single space, trimmed. Invalid
// placeholder syntax yields a *ParseError.
func Normalize(text string) (string, error) {
	normalized := collapseWhitespace(norm.NFC.String(text))
	p := &parser{src: normalized}
	if err := p.message(0); err != nil {
		return "", err
	}
	return normalized, nil
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(off int, format string, args ...any) error {
	return &ParseError{Offset: off, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) skipSpace() {
	for !p.eof() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// message consumes literal text and placeholders until EOF (depth 0) or an
// unescaped '}' (inside a branch sub-message).
func (p *parser) message(depth int) error {
	for !p.eof() {
		switch p.peek() {
		case '\'':
			p.quoted()
		case '{':
			if err := p.argument(); err != nil {
				return err
			}
		case '}':
			if depth == 0 {
				return p.errf(p.pos, "unmatched '}'")
			}
			return nil
		default:
			p.pos++
		}
	}
	if depth > 0 {
		return p.errf(len(p.src), "unclosed sub-message, expected '}'")
	}
	return nil
}

// quoted consumes an apostrophe escape. '' is a literal apostrophe; a quote
// before {, }, # or | escapes everything up to the next lone quote; any
// other quote is literal text.
func (p *parser) quoted() {
	start := p.pos
	p.pos++ // opening '
	if p.eof() {
		return
	}
	switch p.peek() {
	case '\'':
		p.pos++
		return
	case '{', '}', '#', '|':
		for p.pos++; !p.eof(); p.pos++ {
			if p.peek() != '\'' {
				continue
			}
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				p.pos++ // '' inside the escape
				continue
			}
			p.pos++ // closing '
			return
		}
		// Unterminated escape runs to end of message; ICU treats it as
		// literal text, so this is not an error.
		_ = start
	default:
		// Lone apostrophe in plain text.
	}
}

// argument consumes '{ name (, type (, style)?)? }'.
func (p *parser) argument() error {
	open := p.pos
	p.pos++ // '{'
	p.skipSpace()

	name := p.ident()
	if name == "" {
		if p.eof() {
			return p.errf(open, "unclosed argument brace")
		}
		return p.errf(p.pos, "expected argument name after '{'")
	}
	p.skipSpace()

	if p.eof() {
		return p.errf(open, "unclosed argument brace")
	}
	if p.peek() == '}' {
		p.pos++
		return nil
	}
	if p.peek() != ',' {
		return p.errf(p.pos, "expected ',' or '}' after argument name %q", name)
	}
	p.pos++ // ','
	p.skipSpace()

	argType := p.ident()
	if argType == "" {
		return p.errf(p.pos, "expected argument type after ','")
	}
	if !argTypes[argType] {
		return p.errf(p.pos-len(argType), "unknown argument type %q", argType)
	}
	p.skipSpace()

	if !p.eof() && p.peek() == '}' {
		if branchingTypes[argType] {
			return p.errf(p.pos, "%s argument %q is missing its branches", argType, name)
		}
		p.pos++
		return nil
	}
	if p.eof() || p.peek() != ',' {
		return p.errf(p.pos, "expected ',' or '}' after argument type")
	}
	p.pos++ // ','
	p.skipSpace()

	if branchingTypes[argType] {
		if err := p.branches(name, argType); err != nil {
			return err
		}
	} else if err := p.style(); err != nil {
		return err
	}

	p.skipSpace()
	if p.eof() || p.peek() != '}' {
		return p.errf(open, "unclosed argument brace")
	}
	p.pos++
	return nil
}

// style consumes a number/date/time style token, e.g. "percent" or
// "::currency/EUR". Anything brace-free is accepted.
func (p *parser) style() error {
	start := p.pos
	for !p.eof() && p.peek() != '{' && p.peek() != '}' {
		p.pos++
	}
	if strings.TrimSpace(p.src[start:p.pos]) == "" {
		return p.errf(start, "expected style after ','")
	}
	return nil
}

// branches consumes 'selector {message}'+ for plural/select arguments and
// requires an "other" branch.
func (p *parser) branches(name, argType string) error {
	sawOther := false
	sawAny := false
	for {
		p.skipSpace()
		if p.eof() {
			return p.errf(len(p.src), "unclosed argument brace")
		}
		if p.peek() == '}' {
			break
		}
		selector := p.selector()
		if selector == "" {
			return p.errf(p.pos, "expected branch selector in %s argument %q", argType, name)
		}
		if selector == "other" {
			sawOther = true
		}
		sawAny = true
		p.skipSpace()
		if p.eof() || p.peek() != '{' {
			return p.errf(p.pos, "expected '{' after selector %q", selector)
		}
		p.pos++
		if err := p.message(1); err != nil {
			return err
		}
		if p.eof() || p.peek() != '}' {
			return p.errf(p.pos, "unclosed branch %q", selector)
		}
		p.pos++
	}
	if !sawAny {
		return p.errf(p.pos, "%s argument %q has no branches", argType, name)
	}
	if !sawOther {
		return p.errf(p.pos, "%s argument %q is missing the \"other\" branch", argType, name)
	}
	return nil
}

// ident consumes [A-Za-z0-9_]+.
func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// selector consumes a plural/select selector: an ident or an exact-match
// form like "=0".
func (p *parser) selector() string {
	if !p.eof() && p.peek() == '=' {
		start := p.pos
		p.pos++
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		if p.pos == start+1 {
			p.pos = start
			return ""
		}
		return p.src[start:p.pos]
	}
	return p.ident()
}
