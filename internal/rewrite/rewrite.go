// Package rewrite edits or inserts docstrings in a parsed Python file while
// keeping every byte outside the edited spans identical to the original.
package rewrite

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shrynx/docullim/internal/source"
)

// edit replaces src[start:end) with text. Insertions use start == end.
type edit struct {
	start int
	end   int
	text  string
}

// Apply produces new file content with the docstring of each named definition
// replaced by (or set to) the supplied text. The result is built fully in
// memory; callers persist it atomically or not at all.
//
// Unknown names, duplicate definitions, and bodies that share the header line
// are reported as warnings and left untouched. A file with syntax errors
// cannot be rewritten safely and fails as a whole.
func Apply(tree *source.Tree, mods map[string]string) (string, []source.Warning, error) {
	src := tree.Source()
	if len(mods) == 0 {
		return string(src), nil, nil
	}
	if tree.HasError() {
		return "", nil, fmt.Errorf("source has syntax errors; refusing to rewrite")
	}

	targets := make(map[string]bool, len(mods))
	for name := range mods {
		targets[name] = true
	}
	lenses, warnings := tree.Resolve(targets)

	edits := make([]edit, 0, len(mods))
	for name, doc := range mods {
		lens, ok := lenses[name]
		if !ok {
			warnings = append(warnings, source.Warning{
				Name:    name,
				Message: "no matching definition found",
			})
			continue
		}

		block := QuoteDocstring(doc)
		if lens.HasDoc {
			edits = append(edits, edit{start: lens.DocStart, end: lens.DocEnd, text: block})
			continue
		}
		if lens.Inline {
			warnings = append(warnings, source.Warning{
				Name:    name,
				Line:    lens.Line,
				Message: "body shares the definition line; docstring not inserted",
			})
			continue
		}
		edits = append(edits, edit{
			start: lens.InsertAt,
			end:   lens.InsertAt,
			text:  block + "\n" + lens.Indent,
		})
	}

	out, err := splice(src, edits)
	if err != nil {
		return "", nil, err
	}
	return out, warnings, nil
}

// QuoteDocstring renders annotation text as a triple-quoted string literal.
// Delimiter sequences inside the text are escaped so the emitted literal
// always re-parses and evaluates back to the original text.
func QuoteDocstring(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"""`, `\"\"\"`)
	if trailingQuoteBare(escaped) {
		escaped = escaped[:len(escaped)-1] + `\"`
	}
	return `"""` + escaped + `"""`
}

// trailingQuoteBare reports whether s ends in a quote the Python runtime
// would read as unescaped: a final `"` preceded by an even number of
// backslashes. Such a quote would merge with the closing delimiter.
func trailingQuoteBare(s string) bool {
	if !strings.HasSuffix(s, `"`) {
		return false
	}
	slashes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		slashes++
	}
	return slashes%2 == 0
}

func splice(src []byte, edits []edit) (string, error) {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	pos := 0
	for _, e := range edits {
		if e.start < pos || e.end < e.start || e.end > len(src) {
			return "", fmt.Errorf("overlapping or out-of-range edit at byte %d", e.start)
		}
		buf.Write(src[pos:e.start])
		buf.WriteString(e.text)
		pos = e.end
	}
	buf.Write(src[pos:])
	return buf.String(), nil
}
