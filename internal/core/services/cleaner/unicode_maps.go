package cleaner

// Base substitution data. These maps are never mutated; every Cleaner works on
// merged copies built in New.

// insertSpaceMap turns control and invisible separators into a plain space
var insertSpaceMap = map[rune]string{
	'\u0003': " ", // end of text
	'\u0007': " ", // bell
	'\u0009': " ", // horizontal tab
	'\u000b': " ", // vertical tab
	'\u000c': " ", // form feed
	'\u0080': " ",
	'\u0081': " ",
	'\u0082': " ", // break permitted here
	'\u0095': " ", // message waiting
	'\u00a0': " ", // no-break space
	'\u200b': " ", // zero width space
	'\u2028': " ", // line separator
	'\u2192': " ", // rightwards arrow
	'\u220f': " ", // n-ary product
	'\ufa07': " ", // CJK compatibility ideograph
}

// greekAlphabet spells Greek letters out the way they are read in Icelandic
var greekAlphabet = map[rune]string{
	'Δ': "delta",
	'Λ': "lambda",
	'Σ': "sigma",
	'Τ': "tá",
	'ά': "alpha",
	'ή': "eta",
	'ί': "jóta",
	'α': "alpha",
	'γ': "gamma",
	'δ': "delta",
	'ε': "epsilon",
	'η': "eta",
	'ι': "jóta",
	'κ': "kappa",
	'λ': "lambda",
	'μ': "mu",
	'ν': "nu",
	'ο': "omicron",
	'π': "pí",
	'ρ': "ró",
	'ς': "sigma",
	'σ': "sigma",
	'τ': "tá",
	'υ': "upsilon",
	'φ': "fí",
	'χ': "hjí",
	'ω': "omega",
	'ό': "omicron",
	'ύ': "upsilon",
	'ἀ': "alpha",
	'Ἀ': "alpha",
	'ῆ': "eta",
}

// diverseSubstitutions covers typographic variants and Latin-extended letters
var diverseSubstitutions = map[rune]string{
	'\u0085': "...",
	'\u0091': "'",
	'\u0092': "'",
	'\u0096': "-",
	'´': "'",
	'‐': "-",
	'‑': "-",
	'‒': "-",
	'–': "-",
	'—': "-",
	'’': "'",
	'‚': ",",
	'“': "\"",
	'”': "\"",
	'„': "\"",
	'‟': "\"",
	'−': "-",
	'✓': "-",
	'Ā': "A",
	'ā': "a",
	'Ć': "Ts",
	'ć': "ts",
	'Č': "Tj",
	'č': "tj",
	'Đ': "Ð",
	'đ': "ð",
	'Ē': "E",
	'ē': "e",
	'Ě': "É",
	'ě': "é",
	'Ğ': "G",
	'ğ': "g",
	'ı': "i",
	'Ł': "Ú",
	'ł': "ú",
	'Ń': "Nj",
	'ń': "nj",
	'Ň': "Nj",
	'ň': "nj",
	'Ō': "O",
	'ō': "o",
	'Œ': "E",
	'œ': "e",
	'Ř': "Hr",
	'ř': "hr",
	'Ş': "Sj",
	'ş': "sj",
	'Š': "S",
	'š': "s",
	'Ū': "Ú",
	'ū': "ú",
	'Ź': "S",
	'ź': "s",
	'Ż': "S",
	'ż': "s",
	'ș': "s",
	'′': "fet", // prime, read as feet
}

// deleteChars are removed unconditionally
var deleteChars = map[rune]struct{}{
	'\u00ad': {}, // soft hyphen
	'\u200c': {}, // zero width non-joiner
	'\u200d': {}, // zero width joiner
	'\u2060': {}, // word joiner
	'\ufeff': {}, // byte order mark
	'\u0300': {},
	'\u0301': {},
	'\u0302': {},
	'\u0303': {},
	'\u0304': {},
	'\u0305': {},
	'\u0306': {},
	'\u0307': {},
	'\u0308': {},
}

// fallbackTransliteration is consulted for characters outside the alphabet after
// all other checks. A substitute is only used when every letter of it is in the
// active alphabet.
var fallbackTransliteration = map[rune]string{
	'c': "k",
	'w': "v",
	'z': "s",
	'q': "k",
	'å': "o",
	'ä': "e",
	'ü': "u",
	'ø': "ö",
	'ć': "ts",
	'ę': "e",
	'ł': "ú",
	'ń': "n",
	'ś': "s",
	'ß': "ss",
	'ź': "s",
	'ż': "s",
	'C': "K",
	'W': "V",
	'Z': "S",
	'Q': "K",
	'Å': "O",
	'Ä': "E",
	'Ü': "U",
	'Ø': "Ö",
}

// DefaultReplacements returns a fresh copy of the merged base replacement table
func DefaultReplacements() map[rune]string {
	merged := make(map[rune]string, len(insertSpaceMap)+len(diverseSubstitutions)+len(greekAlphabet))
	for _, m := range []map[rune]string{insertSpaceMap, diverseSubstitutions, greekAlphabet} {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// DefaultDeletions returns a fresh copy of the base deletion set
func DefaultDeletions() map[rune]struct{} {
	out := make(map[rune]struct{}, len(deleteChars))
	for k := range deleteChars {
		out[k] = struct{}{}
	}
	return out
}

// DefaultFallback returns a fresh copy of the fallback transliteration table
func DefaultFallback() map[rune]string {
	out := make(map[rune]string, len(fallbackTransliteration))
	for k, v := range fallbackTransliteration {
		out[k] = v
	}
	return out
}
