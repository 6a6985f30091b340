package cleaner

import "strings"

// IsLabelledSpan reports whether token starts with the foreign-language label
// "(e." ("(e.g." is an abbreviation, not a label).
func IsLabelledSpan(token string) bool {
	return strings.HasPrefix(token, LabelPrefixNoSpace) && !strings.HasPrefix(token, "(e.g.")
}

// CleanLabelledSpan deletes the span or wraps its text in the configured
// language markup. The interior text is kept verbatim.
func (c *Cleaner) CleanLabelledSpan(token string) string {
	if c.options.DeleteLabelledSpans {
		return " "
	}
	return c.labelledToMarkup(token)
}

func (c *Cleaner) labelledToMarkup(token string) string {
	body, ok := strings.CutPrefix(token, LabelPrefix)
	if !ok {
		body = strings.TrimPrefix(token, LabelPrefixNoSpace)
	}
	body = strings.ReplaceAll(body, LabelSuffix, c.langEnd)
	return c.langStart + body + " "
}
