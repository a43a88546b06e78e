// Package parser is the host side of the extraction engine: it parses
// JavaScript / TypeScript / JSX sources with tree-sitter, resolves import
// origins, evaluates constant expressions and drives the extract visitor
// in tree order.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"intlex/internal/source"
)

// importBinding records where a local name was imported from.
type importBinding struct {
	moduleSource string // e.g. "react-intl"
	importedName string // the exported name, before any "as" alias
}

// Unit is one parsed compilation unit: the tree, its content and the
// file-level tables the evaluator and matcher need.
type Unit struct {
	file    *source.File
	tree    *sitter.Tree
	imports map[string]importBinding
	consts  map[string]*sitter.Node // file-level const name -> initializer
}

// Parse parses the file with the grammar matching its extension (.ts/.tsx
// and .jsx go through the TSX grammar, plain .js through the JavaScript
// one) and builds the unit's import and const tables.
func Parse(ctx context.Context, file *source.File) (*Unit, error) {
	p := sitter.NewParser()
	p.SetLanguage(languageFor(file.Path))

	tree, err := p.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file.Path, err)
	}

	u := &Unit{
		file:    file,
		tree:    tree,
		imports: make(map[string]importBinding),
		consts:  make(map[string]*sitter.Node),
	}
	u.scanTopLevel()
	return u, nil
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return javascript.GetLanguage()
	default:
		// TSX parses TS, JSX and TSX sources alike.
		return tsx.GetLanguage()
	}
}

// HasSyntaxErrors reports whether tree-sitter flagged any part of the
// unit as unparseable.
func (u *Unit) HasSyntaxErrors() bool {
	return u.tree.RootNode().HasError()
}

// File returns the unit's source file.
func (u *Unit) File() *source.File {
	return u.file
}

// scanTopLevel fills the import and const tables from the program's
// top-level statements.
func (u *Unit) scanTopLevel() {
	root := u.tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "import_statement":
			u.scanImport(stmt)
		case "lexical_declaration":
			u.scanConstDeclaration(stmt)
		case "export_statement":
			// export const x = ... still binds x locally.
			if decl := stmt.ChildByFieldName("declaration"); decl != nil && decl.Type() == "lexical_declaration" {
				u.scanConstDeclaration(decl)
			}
		}
	}
}

func (u *Unit) scanImport(stmt *sitter.Node) {
	sourceNode := stmt.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	moduleSource, ok := u.stringValue(sourceNode)
	if !ok {
		return
	}

	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			item := clause.NamedChild(j)
			switch item.Type() {
			case "identifier":
				// Default import.
				u.imports[u.text(item)] = importBinding{
					moduleSource: moduleSource,
					importedName: "default",
				}
			case "named_imports":
				u.scanNamedImports(item, moduleSource)
			case "namespace_import":
				// import * as intl: member access is not resolved.
			}
		}
	}
}

func (u *Unit) scanNamedImports(n *sitter.Node, moduleSource string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		imported := u.text(nameNode)
		if nameNode.Type() == "string" {
			if s, ok := u.stringValue(nameNode); ok {
				imported = s
			}
		}
		local := imported
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			local = u.text(alias)
		}
		u.imports[local] = importBinding{
			moduleSource: moduleSource,
			importedName: imported,
		}
	}
}

// scanConstDeclaration records file-level const bindings so the evaluator
// can follow simple references.
func (u *Unit) scanConstDeclaration(decl *sitter.Node) {
	if kw := decl.Child(0); kw == nil || kw.Type() != "const" {
		return
	}
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		value := d.ChildByFieldName("value")
		if name == nil || value == nil || name.Type() != "identifier" {
			continue
		}
		u.consts[u.text(name)] = value
	}
}

func (u *Unit) text(n *sitter.Node) string {
	return n.Content(u.file.Content)
}

func (u *Unit) span(n *sitter.Node) source.Span {
	return source.Span{
		File:  u.file.ID,
		Start: n.StartByte(),
		End:   n.EndByte(),
	}
}
