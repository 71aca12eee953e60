package source

import "fmt"

// Lens locates the documentation block of one resolved definition: either the
// exact span of an existing leading docstring statement, or the insertion
// point for a new one.
type Lens struct {
	Name   string
	Line   int
	HasDoc bool

	// DocStart/DocEnd delimit the existing docstring expression statement
	// when HasDoc is true.
	DocStart int
	DocEnd   int

	// InsertAt is the offset of the first body statement when HasDoc is
	// false; a new docstring line goes immediately before it. Indent is
	// that statement's leading whitespace.
	InsertAt int
	Indent   string

	// Inline marks a body that starts on the header line (def f(): pass).
	// Such definitions cannot take a docstring line without reflowing the
	// header, so the rewrite engine skips them.
	Inline bool
}

// Warning records a non-fatal resolution problem.
type Warning struct {
	Name    string
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (line %d): %s", w.Name, w.Line, w.Message)
}

// Resolve finds the definitions whose declared names are in targets and
// builds a lens for each. When several definitions share a name, the first
// one encountered in a pre-order, top-to-bottom traversal of module- and
// class-level scopes wins; later duplicates are recorded as warnings.
func (t *Tree) Resolve(targets map[string]bool) (map[string]Lens, []Warning) {
	lenses := make(map[string]Lens, len(targets))
	warnings := make([]Warning, 0)

	t.forEachDefinition(func(d definition) bool {
		name := nodeName(d.node, t.src)
		if name == "" || !targets[name] {
			return true
		}

		line := int(d.node.StartPoint().Row) + 1
		if _, seen := lenses[name]; seen {
			warnings = append(warnings, Warning{
				Name:    name,
				Line:    line,
				Message: "duplicate definition ignored; keeping the first occurrence",
			})
			return true
		}

		lens, ok := t.lensFor(name, d)
		if !ok {
			warnings = append(warnings, Warning{
				Name:    name,
				Line:    line,
				Message: "definition has no resolvable body",
			})
			return true
		}
		lenses[name] = lens
		return true
	})

	return lenses, warnings
}

func (t *Tree) lensFor(name string, d definition) (Lens, bool) {
	lens := Lens{Name: name, Line: int(d.node.StartPoint().Row) + 1}

	if doc := docstringNode(d.node); doc != nil {
		lens.HasDoc = true
		lens.DocStart = int(doc.StartByte())
		lens.DocEnd = int(doc.EndByte())
		return lens, true
	}

	body := d.node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return Lens{}, false
	}
	first := body.NamedChild(0)
	lens.InsertAt = int(first.StartByte())
	lens.Indent = lineIndent(t.src, lens.InsertAt)
	lens.Inline = first.StartPoint().Row == d.node.StartPoint().Row

	return lens, true
}

// lineIndent returns the whitespace between the start of the line containing
// offset and offset itself. Non-whitespace before the offset means the
// statement does not open its line and there is no usable indent.
func lineIndent(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	for i := start; i < offset; i++ {
		if src[i] != ' ' && src[i] != '\t' {
			return ""
		}
	}
	return string(src[start:offset])
}
