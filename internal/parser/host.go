package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"intlex/internal/extract"
	"intlex/internal/source"
)

// node wraps a tree-sitter node as an opaque extract.Node.
type node struct {
	ts *sitter.Node
	u  *Unit
}

func (n node) Span() source.Span {
	return n.u.span(n.ts)
}

func (u *Unit) wrap(ts *sitter.Node) extract.Node {
	if ts == nil {
		return nil
	}
	return node{ts: ts, u: u}
}

func (u *Unit) unwrapNode(n extract.Node) *sitter.Node {
	if nn, ok := n.(node); ok {
		return nn.ts
	}
	return nil
}

// KindOf classifies a tree-sitter node into the shapes the core matches.
func (u *Unit) KindOf(n extract.Node) extract.Kind {
	ts := u.unwrapNode(n)
	if ts == nil {
		return extract.KindOther
	}
	switch ts.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return extract.KindIdentifier
	case "jsx_self_closing_element", "jsx_opening_element":
		return extract.KindMarkupElement
	case "call_expression":
		return extract.KindCall
	case "object":
		return extract.KindObject
	case "string", "template_string", "number", "true", "false", "null":
		return extract.KindLiteral
	case "jsx_expression":
		return extract.KindContainer
	case "spread_element":
		return extract.KindSpread
	}
	return extract.KindOther
}

func (u *Unit) IdentName(n extract.Node) (string, bool) {
	ts := u.unwrapNode(n)
	if ts == nil {
		return "", false
	}
	switch ts.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return u.text(ts), true
	}
	return "", false
}

// ReferencesImport reports whether the identifier is bound by importing
// one of names from one of the module sources. Aliased imports resolve
// through their original exported name, like the upstream babel check.
func (u *Unit) ReferencesImport(n extract.Node, sources, names []string) bool {
	name, ok := u.IdentName(n)
	if !ok {
		return false
	}
	binding, ok := u.imports[name]
	if !ok {
		return false
	}
	if !contains(sources, binding.moduleSource) {
		return false
	}
	return contains(names, binding.importedName)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (u *Unit) MarkupName(n extract.Node) extract.Node {
	ts := u.unwrapNode(n)
	if ts == nil {
		return nil
	}
	return u.wrap(ts.ChildByFieldName("name"))
}

// MarkupAttributes returns the element's jsx_attribute children as
// property pairs. Spread attributes ({...props}) are not statically
// evaluable and are omitted per the host contract.
func (u *Unit) MarkupAttributes(n extract.Node) []extract.PropertyPair {
	ts := u.unwrapNode(n)
	if ts == nil {
		return nil
	}
	var pairs []extract.PropertyPair
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child.Type() != "jsx_attribute" {
			continue
		}
		if child.NamedChildCount() == 0 {
			continue
		}
		key := child.NamedChild(0)
		var value *sitter.Node
		if child.NamedChildCount() > 1 {
			value = child.NamedChild(1)
		}
		pairs = append(pairs, extract.PropertyPair{
			Key:   u.wrap(key),
			Value: u.wrap(value),
		})
	}
	return pairs
}

func (u *Unit) CallCallee(n extract.Node) extract.Node {
	ts := u.unwrapNode(n)
	if ts == nil {
		return nil
	}
	return u.wrap(ts.ChildByFieldName("function"))
}

func (u *Unit) CallArguments(n extract.Node) []extract.Node {
	ts := u.unwrapNode(n)
	if ts == nil {
		return nil
	}
	args := ts.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]extract.Node, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		out = append(out, u.wrap(args.NamedChild(i)))
	}
	return out
}

// ObjectProperties returns the object literal's pair properties. Spreads,
// methods and shorthand properties carry no extractable descriptor data
// and are omitted.
func (u *Unit) ObjectProperties(n extract.Node) []extract.PropertyPair {
	ts := u.unwrapNode(n)
	if ts == nil {
		return nil
	}
	var pairs []extract.PropertyPair
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		prop := ts.NamedChild(i)
		if prop.Type() != "pair" {
			continue
		}
		key := prop.ChildByFieldName("key")
		value := prop.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		pairs = append(pairs, extract.PropertyPair{
			Key:   u.wrap(key),
			Value: u.wrap(value),
		})
	}
	return pairs
}

// Unwrap removes one jsx_expression container level: {expr} -> expr.
func (u *Unit) Unwrap(n extract.Node) extract.Node {
	ts := u.unwrapNode(n)
	if ts == nil || ts.Type() != "jsx_expression" {
		return n
	}
	if ts.NamedChildCount() == 0 {
		return n
	}
	return u.wrap(ts.NamedChild(0))
}

func (u *Unit) RawText(n extract.Node) string {
	ts := u.unwrapNode(n)
	if ts == nil {
		return ""
	}
	return u.text(ts)
}
