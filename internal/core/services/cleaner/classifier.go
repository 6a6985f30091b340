package cleaner

import (
	"strings"
	"unicode"
)

// ValidateCharacters classifies each character of token and returns the
// cleaned token followed by a separator space. The first matching rule wins:
//
//  1. replacement table
//  2. deletion set
//  3. preserve set or digit
//  4. emoji table, when emojis are preserved or described
//  5. alphabet (case-insensitive)
//  6. punctuation set
//  7. fallback transliteration, spacer for brackets and quotes, else drop
//
// Replacement output is written as is and not classified again.
func (c *Cleaner) ValidateCharacters(token string) string {
	var b strings.Builder
	b.Grow(len(token) + 1)
	for _, r := range token {
		c.classify(&b, r)
	}
	b.WriteByte(' ')
	return b.String()
}

func (c *Cleaner) classify(b *strings.Builder, r rune) {
	if repl, ok := c.replacements[r]; ok {
		b.WriteString(repl)
		return
	}
	if _, ok := c.deletions[r]; ok {
		return
	}

	s := string(r)
	if _, ok := c.preserve[s]; ok || unicode.IsDigit(r) {
		b.WriteRune(r)
		return
	}

	if desc, ok := c.emojiTable[s]; ok {
		switch c.emoji.Mode() {
		case EmojiPreserve:
			b.WriteRune(r)
			return
		case EmojiDescribe:
			b.WriteString(desc)
			return
		}
	}

	if c.inAlphabet(r) {
		b.WriteRune(r)
		return
	}
	if _, ok := c.punctuation[r]; ok {
		b.WriteRune(r)
		return
	}

	c.replaceOrDrop(b, r)
}

func (c *Cleaner) replaceOrDrop(b *strings.Builder, r rune) {
	if sub, ok := c.fallback[r]; ok && c.allInAlphabet(sub) {
		b.WriteString(sub)
		return
	}
	switch r {
	case '(', ')', '"':
		b.WriteString(Spacer)
		return
	}
	// dash, apostrophe and the like are produced by the replacement table
	// and kept when they appear literally
	if _, ok := c.replacementOutputs[r]; ok {
		b.WriteRune(r)
		return
	}
	b.WriteString(c.options.DropReplacement)
}

func (c *Cleaner) inAlphabet(r rune) bool {
	_, ok := c.alphabet[unicode.ToLower(r)]
	return ok
}

func (c *Cleaner) allInAlphabet(s string) bool {
	for _, r := range s {
		if !c.inAlphabet(r) {
			return false
		}
	}
	return s != ""
}
