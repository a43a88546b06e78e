package extract

import (
	"intlex/internal/source"
)

// Node is an opaque syntax-tree node owned by the host parser. The core
// never inspects nodes directly; it asks the Host.
type Node interface {
	Span() source.Span
}

// Kind classifies the node shapes the core cares about.
type Kind uint8

const (
	KindOther Kind = iota
	KindIdentifier
	KindMarkupElement
	KindCall
	KindObject
	KindLiteral
	// KindContainer is a markup expression container, e.g. {expr} in an
	// attribute position.
	KindContainer
	KindSpread
)

// Evaluation is the result of attempting to compute a node's compile-time
// constant value. NotConfident is an expected outcome, not an error: the
// caller warns and treats the property as absent.
type Evaluation struct {
	Confident bool
	Value     any
}

// Confident wraps a resolved constant value.
func Confident(v any) Evaluation {
	return Evaluation{Confident: true, Value: v}
}

// NotConfident is the zero Evaluation.
var NotConfident = Evaluation{}

// PropertyPair is a transient (key node, value node) pair lifted from a
// markup usage's attributes or an object literal's properties.
type PropertyPair struct {
	Key   Node
	Value Node
}

// Host is the parser collaborator contract. internal/parser implements it
// over tree-sitter; tests implement it over a hand-built tree.
type Host interface {
	// KindOf classifies a node. Nil nodes are KindOther.
	KindOf(n Node) Kind
	// IdentName returns the identifier's name, if n is one.
	IdentName(n Node) (string, bool)
	// ReferencesImport reports whether the identifier n is bound by an
	// import of one of names from one of the module sources.
	ReferencesImport(n Node, sources []string, names []string) bool

	// MarkupName returns the tag identifier node of a markup element.
	MarkupName(n Node) Node
	// MarkupAttributes returns the element's attributes as property pairs.
	// Spread attributes are omitted: they cannot be evaluated statically.
	MarkupAttributes(n Node) []PropertyPair
	// CallCallee returns the callee node of a call expression.
	CallCallee(n Node) Node
	// CallArguments returns the call's argument nodes.
	CallArguments(n Node) []Node
	// ObjectProperties returns an object literal's non-spread properties.
	ObjectProperties(n Node) []PropertyPair

	// Unwrap removes exactly one expression-container level, returning n
	// unchanged for any other node.
	Unwrap(n Node) Node
	// Evaluate attempts constant evaluation of an expression node.
	Evaluate(n Node) Evaluation
	// RawText returns the node's verbatim source text.
	RawText(n Node) string
}
