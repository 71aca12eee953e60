package source

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// MarkerName is the decorator that marks a definition for documentation
// generation: @docullim or @docullim("tag").
const MarkerName = "docullim"

// Unit is one marked definition discovered in a file.
type Unit struct {
	Name      string
	Tag       string // prompt tag from @docullim("tag"), empty for the bare form
	RawSource string // verbatim span including decorators
	HasDoc    bool   // whether the body already begins with a docstring
	Line      int
}

// Units returns the marked definitions in the tree, in pre-order across
// module- and class-level scopes.
func (t *Tree) Units() []Unit {
	units := make([]Unit, 0)

	t.forEachDefinition(func(d definition) bool {
		if d.decorated == nil {
			return true
		}
		tag, marked := markerTag(d.decorated, t.src)
		if !marked {
			return true
		}
		name := nodeName(d.node, t.src)
		if name == "" {
			return true
		}
		units = append(units, Unit{
			Name:      name,
			Tag:       tag,
			RawSource: d.decorated.Content(t.src),
			HasDoc:    docstringNode(d.node) != nil,
			Line:      int(d.decorated.StartPoint().Row) + 1,
		})
		return true
	})

	return units
}

// markerTag inspects the decorators of a decorated_definition and reports
// whether one of them is the docullim marker, along with its tag argument.
func markerTag(decorated *sitter.Node, src []byte) (string, bool) {
	for i := 0; i < int(decorated.NamedChildCount()); i++ {
		child := decorated.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if child.NamedChildCount() == 0 {
			continue
		}

		expr := child.NamedChild(0)
		switch expr.Type() {
		case "identifier":
			if expr.Content(src) == MarkerName {
				return "", true
			}
		case "call":
			fn := expr.ChildByFieldName("function")
			if fn == nil || fn.Type() != "identifier" || fn.Content(src) != MarkerName {
				continue
			}
			tag := ""
			if args := expr.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
				arg := args.NamedChild(0)
				if arg.Type() == "string" {
					tag = stringLiteralValue(arg.Content(src))
				}
			}
			return tag, true
		}
	}
	return "", false
}

// stringLiteralValue strips the quoting from a Python string literal token.
func stringLiteralValue(raw string) string {
	raw = strings.TrimLeft(raw, "rRbBuUfF")
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, quote) && strings.HasSuffix(raw, quote) && len(raw) >= 2*len(quote) {
			return raw[len(quote) : len(raw)-len(quote)]
		}
	}
	return raw
}
