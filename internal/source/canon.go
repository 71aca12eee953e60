package source

// Canonicalize strips the leading docstring from a unit's raw source so that
// two versions of a unit differing only in documentation share a cache key.
//
// The unit is parsed in isolation. When the first definition's body begins
// with a standalone string expression statement, exactly that statement (and
// its line, when it stands alone on one) is removed. On any parse trouble the
// input is returned unchanged: canonicalization is a best-effort
// normalization, never a correctness requirement. The function is
// deterministic, which is what the cache key depends on.
func Canonicalize(raw string) string {
	tree, err := Parse([]byte(raw))
	if err != nil {
		return raw
	}
	defer tree.Close()

	if tree.HasError() {
		return raw
	}

	var doc *Lens
	tree.forEachDefinition(func(d definition) bool {
		if node := docstringNode(d.node); node != nil {
			doc = &Lens{DocStart: int(node.StartByte()), DocEnd: int(node.EndByte())}
		}
		return false // only the first definition matters
	})
	if doc == nil {
		return raw
	}

	start, end := statementLineSpan([]byte(raw), doc.DocStart, doc.DocEnd)
	return raw[:start] + raw[end:]
}

// statementLineSpan widens a statement span to its full line(s) when the
// statement is alone on them: the leading indent is consumed, and the line
// tail is consumed through the newline when only whitespace follows. A
// trailing comment or a second statement on the line keeps the span exact.
func statementLineSpan(src []byte, start, end int) (int, int) {
	lineStart := start
	for lineStart > 0 && src[lineStart-1] != '\n' {
		if src[lineStart-1] != ' ' && src[lineStart-1] != '\t' {
			return start, end
		}
		lineStart--
	}

	tail := end
	for tail < len(src) && (src[tail] == ' ' || src[tail] == '\t' || src[tail] == '\r') {
		tail++
	}
	if tail < len(src) && src[tail] == '\n' {
		return lineStart, tail + 1
	}
	if tail == len(src) {
		return lineStart, tail
	}
	return start, end
}
