package cleaner

// IcelandicAlphabet is the default target alphabet. Upper-case letters are accepted
// by lower-casing before lookup.
var IcelandicAlphabet = []rune{
	'a', 'á', 'b', 'd', 'ð', 'e', 'é', 'f', 'g', 'h', 'i', 'í', 'j', 'k', 'l', 'm',
	'n', 'o', 'ó', 'p', 'r', 's', 't', 'u', 'ú', 'v', 'y', 'ý', 'þ', 'æ', 'ö', 'x',
}

// DefaultPunctuation is the default set of punctuation marks kept verbatim
var DefaultPunctuation = []rune{'.', ',', ':', '!', '?'}

// CommonPunctuation is stripped from token edges before preserve-set lookup
const CommonPunctuation = ",.?!:;()"

// CollapsiblePunctuation is the fixed set used when collapsing punctuation runs
const CollapsiblePunctuation = ".,:;?!"

// Spacer replaces brackets and double quotes so they still cause a pause
const Spacer = " , "

// DefaultEmojiReplacement replaces emojis when no other emoji policy is selected
const DefaultEmojiReplacement = "."

// Labelled foreign-language span markers
const (
	LabelPrefix        = "(e. "
	LabelPrefixNoSpace = "(e."
	LabelSuffix        = ")"
)

// LanguageMarkup selects the wrapper written around labelled foreign spans
type LanguageMarkup string

const (
	// MarkupSSML wraps spans in SSML 1.1 lang elements
	MarkupSSML LanguageMarkup = "ssml"
	// MarkupSimple wraps spans in <en> ... </en>
	MarkupSimple LanguageMarkup = "simple"
)

// SSML 1.1 lang element
const (
	SSMLLangStart = `<lang xml:lang="en-GB"> `
	SSMLLangEnd   = ` </lang>`
)

const (
	SimpleLangStart = "<en> "
	SimpleLangEnd   = " </en>"
)

// Delimiters returns the opening and closing wrapper for the markup style.
// Unknown styles fall back to SSML.
func (m LanguageMarkup) Delimiters() (string, string) {
	if m == MarkupSimple {
		return SimpleLangStart, SimpleLangEnd
	}
	return SSMLLangStart, SSMLLangEnd
}
