package cleaner

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	punctuationRun = regexp.MustCompile(`([.,:;?!])(?:\s*[.,:;?!]+)+`)
)

// Reassemble collapses whitespace, reduces punctuation runs to their first
// mark and trims the result. Reassemble(Reassemble(x)) == Reassemble(x).
func Reassemble(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = RemoveConsecutivePunctuation(text)
	return strings.TrimSpace(text)
}

// RemoveConsecutivePunctuation keeps only the first mark of a run of
// punctuation marks, including runs separated by whitespace.
func RemoveConsecutivePunctuation(text string) string {
	return punctuationRun.ReplaceAllString(text, "$1")
}
