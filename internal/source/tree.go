// Package source parses Python files with tree-sitter and locates the
// definitions that docullim works on.
//
// A Tree keeps the original bytes next to the parse so unmodified regions can
// always be re-emitted byte-identical. Trees are not safe for concurrent use;
// each file gets its own Tree for the duration of one processing run.
package source

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Tree is a full-fidelity parse of one Python source file.
type Tree struct {
	src  []byte
	tree *sitter.Tree
}

// Parse builds a Tree from raw file content.
func Parse(content []byte) (*Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return &Tree{src: content, tree: tree}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Source returns the original bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// HasError reports whether the parse contains syntax errors.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

func (t *Tree) root() *sitter.Node {
	return t.tree.RootNode()
}

// definition is one module- or class-level function or class definition,
// together with its wrapping decorated_definition node when present.
type definition struct {
	node      *sitter.Node // function_definition or class_definition
	decorated *sitter.Node // nil when undecorated
}

// forEachDefinition visits module- and class-level definitions in pre-order,
// top to bottom. A class is visited before its methods; function bodies are
// not descended into.
func (t *Tree) forEachDefinition(visit func(d definition) bool) {
	walkDefinitions(t.root(), visit)
}

func walkDefinitions(scope *sitter.Node, visit func(d definition) bool) bool {
	for i := 0; i < int(scope.NamedChildCount()); i++ {
		child := scope.NamedChild(i)

		var def definition
		switch child.Type() {
		case "decorated_definition":
			inner := child.ChildByFieldName("definition")
			if inner == nil {
				continue
			}
			def = definition{node: inner, decorated: child}
		case "function_definition", "class_definition":
			def = definition{node: child}
		default:
			continue
		}

		if !visit(def) {
			return false
		}

		if def.node.Type() == "class_definition" {
			if body := def.node.ChildByFieldName("body"); body != nil {
				if !walkDefinitions(body, visit) {
					return false
				}
			}
		}
	}
	return true
}

// nodeName returns the declared name of a definition node.
func nodeName(def *sitter.Node, src []byte) string {
	nameNode := def.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return nameNode.Content(src)
}

// docstringNode returns the leading docstring statement of a definition body:
// the first named statement when it is an expression_statement wrapping a
// string literal.
func docstringNode(def *sitter.Node) *sitter.Node {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return nil
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return nil
	}
	if first.NamedChild(0).Type() != "string" {
		return nil
	}
	return first
}
