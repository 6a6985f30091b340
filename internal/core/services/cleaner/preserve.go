package cleaner

import "strings"

var bracketSpacer = strings.NewReplacer("(", Spacer, ")", Spacer, `"`, Spacer)

// matchPreserved reports whether token, or token with common punctuation
// trimmed from both ends, is in the preserve set. A preserved token is
// returned verbatim except for brackets and quotes, which become spacers.
func (c *Cleaner) matchPreserved(token string) (string, bool) {
	if len(c.preserve) == 0 {
		return "", false
	}
	if _, ok := c.preserve[token]; !ok {
		if _, ok := c.preserve[strings.Trim(token, CommonPunctuation)]; !ok {
			return "", false
		}
	}
	return bracketSpacer.Replace(token) + " ", true
}

// IsURL reports whether token looks like a URL and must pass through untouched
func IsURL(token string) bool {
	return strings.HasPrefix(token, "http") || strings.HasPrefix(token, "www")
}
