package cleaner

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Cleaner normalizes free-form text into the configured alphabet and
// punctuation inventory. A Cleaner is immutable after New and safe for
// concurrent use.
type Cleaner struct {
	options Options

	replacements       map[rune]string
	replacementOutputs map[rune]struct{}
	deletions          map[rune]struct{}
	fallback           map[rune]string
	alphabet           map[rune]struct{}
	punctuation        map[rune]struct{}
	preserve           map[string]struct{}
	emojiTable         map[string]string

	emoji         EmojiPolicy
	emojiReplacer *strings.Replacer

	langStart string
	langEnd   string

	logger *slog.Logger
}

// New builds a Cleaner from opts. Caller maps are copied, never retained.
func New(opts Options, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.Clone()

	c := &Cleaner{
		options:    opts,
		deletions:  DefaultDeletions(),
		fallback:   DefaultFallback(),
		emojiTable: DefaultEmojiTable(),
		emoji:      opts.Emoji,
		logger:     logger,
	}

	alphabet := opts.Alphabet
	if len(alphabet) == 0 {
		alphabet = IcelandicAlphabet
	}
	c.alphabet = runeSet(alphabet)

	punct := opts.PunctuationSet
	if len(punct) == 0 {
		punct = DefaultPunctuation
	}
	c.punctuation = runeSet(punct)

	c.replacements = DefaultReplacements()
	for k, v := range opts.CharacterReplacements {
		c.replacements[k] = v
	}
	if opts.PunctuationReplacement != "" {
		for _, p := range punct {
			c.replacements[p] = opts.PunctuationReplacement
		}
	}

	c.replacementOutputs = make(map[rune]struct{})
	for _, v := range c.replacements {
		if utf8.RuneCountInString(v) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(v)
		if !unicode.IsLetter(r) {
			c.replacementOutputs[r] = struct{}{}
		}
	}

	c.preserve = make(map[string]struct{}, len(opts.PreserveStrings))
	for _, s := range opts.PreserveStrings {
		c.preserve[s] = struct{}{}
	}

	c.langStart, c.langEnd = opts.LanguageMarkup.Delimiters()
	c.emojiReplacer = c.buildEmojiReplacer()

	c.logger.Debug("cleaner configured",
		slog.String("emoji_policy", c.emoji.Mode().String()),
		slog.Int("replacements", len(c.replacements)),
		slog.Int("alphabet_size", len(c.alphabet)),
		slog.Int("preserve_strings", len(c.preserve)),
		slog.Bool("delete_labelled_spans", opts.DeleteLabelledSpans))

	return c
}

// Options returns a copy of the options the Cleaner was built from
func (c *Cleaner) Options() Options {
	return c.options.Clone()
}

// Clean runs the full token pipeline on text
func (c *Cleaner) Clean(text string) string {
	if c.options.ComposeInput {
		text = norm.NFC.String(text)
	}
	text = c.ProcessEmojis(text)

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for token := range Tokens(text) {
		b.WriteString(c.cleanToken(token))
	}

	return Reassemble(b.String())
}

// CleanLines cleans each line of text on its own and joins the results with
// newlines.
func (c *Cleaner) CleanLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = c.Clean(strings.TrimSuffix(line, "\r"))
	}
	return strings.Join(lines, "\n")
}

// cleanToken returns the processed token followed by a separator space
func (c *Cleaner) cleanToken(token string) string {
	if out, ok := c.matchPreserved(token); ok {
		return out
	}
	if IsLabelledSpan(token) {
		return c.CleanLabelledSpan(token)
	}
	if IsURL(token) {
		return token + " "
	}
	return c.ValidateCharacters(token)
}

func runeSet(runes []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return set
}

// sortedByLengthDesc orders keys longest first so multi-rune sequences win
// over their prefixes.
func sortedByLengthDesc(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
