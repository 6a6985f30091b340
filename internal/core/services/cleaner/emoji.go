package cleaner

import "strings"

// ProcessEmojis applies the active emoji policy to the whole text. Glyphs in
// the preserve set are never touched.
func (c *Cleaner) ProcessEmojis(text string) string {
	switch c.emoji.Mode() {
	case EmojiPreserve, EmojiNone:
		return text
	}
	if c.emojiReplacer == nil {
		return text
	}
	return c.emojiReplacer.Replace(text)
}

func (c *Cleaner) buildEmojiReplacer() *strings.Replacer {
	mode := c.emoji.Mode()
	if mode != EmojiDescribe && mode != EmojiReplace {
		return nil
	}

	keys := make([]string, 0, len(c.emojiTable))
	for glyph := range c.emojiTable {
		if _, ok := c.preserve[glyph]; ok {
			continue
		}
		keys = append(keys, glyph)
	}

	pairs := make([]string, 0, 2*len(keys))
	for _, glyph := range sortedByLengthDesc(keys) {
		if mode == EmojiDescribe {
			pairs = append(pairs, glyph, c.emojiTable[glyph])
		} else {
			pairs = append(pairs, glyph, c.emoji.Replacement())
		}
	}
	return strings.NewReplacer(pairs...)
}
