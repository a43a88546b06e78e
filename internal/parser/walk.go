package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"intlex/internal/extract"
)

// Walk drives the extractor over the unit in tree order: unit enter, one
// callback per markup element and call expression, unit exit. The
// returned messages are the unit's catalog; a non-nil error means the
// unit failed fail-stop and no catalog should be emitted.
func (u *Unit) Walk(e *extract.Extractor) ([]extract.Descriptor, error) {
	e.OnUnitEnter()
	if err := u.walk(u.tree.RootNode(), e); err != nil {
		return nil, err
	}
	return e.OnUnitExit(), nil
}

func (u *Unit) walk(ts *sitter.Node, e *extract.Extractor) error {
	switch ts.Type() {
	case "jsx_self_closing_element", "jsx_opening_element":
		if err := e.OnMarkupNode(u.wrap(ts)); err != nil {
			return err
		}
	case "call_expression":
		if err := e.OnCallNode(u.wrap(ts)); err != nil {
			return err
		}
	}
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if err := u.walk(ts.NamedChild(i), e); err != nil {
			return err
		}
	}
	return nil
}
