package lang

// scanLogicalSegment returns the span of unquoted value text beginning at
// start, and the offset where that span ends. It never consumes the
// terminating character.
//
// The segment ends at the first of:
//   - a '}' that closes no '{' opened inside the segment;
//   - a whitespace run, outside any braces, that is immediately followed by
//     "name:" (the start of the next item);
//   - the end of input.
//
// The first token of the segment is never taken as the start of an item, so
// a comment such as "// NOTE: later" keeps its leading "NOTE:".
func scanLogicalSegment(input string, start int) (string, int) {
	depth := 0

	for i := start; i < len(input); {
		c := input[i]

		switch {
		case c == '{':
			depth++

		case c == '}':
			if depth == 0 {
				return input[start:i], i
			}

			depth--

		case isSpace(c) && depth == 0:
			j := i
			for j < len(input) && isSpace(input[j]) {
				j++
			}

			if startsItem(input, j) {
				return input[start:i], i
			}

			i = j

			continue
		}

		i++
	}

	return input[start:], len(input)
}

// startsItem reports whether input at offset i reads "name:" with no space
// between the name and the colon.
func startsItem(input string, i int) bool {
	if i >= len(input) || !isNameStart(rune(input[i])) {
		return false
	}

	i++
	for i < len(input) && isNameContinue(rune(input[i])) {
		i++
	}

	return i < len(input) && input[i] == ':'
}
