package cleaner

import (
	"iter"
	"unicode"
)

// Tokens splits text on whitespace runs. Whitespace inside an open parenthesis
// does not split, so "(e. Hello World)" is a single token. An unclosed "("
// absorbs the rest of the text.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		depth := 0
		start := -1
		for i, r := range text {
			switch {
			case r == '(':
				depth++
			case r == ')':
				if depth > 0 {
					depth--
				}
			case depth == 0 && unicode.IsSpace(r):
				if start >= 0 {
					if !yield(text[start:i]) {
						return
					}
					start = -1
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			yield(text[start:])
		}
	}
}

// TokenList collects Tokens into a slice
func TokenList(text string) []string {
	var out []string
	for t := range Tokens(text) {
		out = append(out, t)
	}
	return out
}
