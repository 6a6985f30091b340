package cleaner

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_DefaultOptions(t *testing.T) {
	c := New(Options{}, nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "greek letter spelled out, decimal number kept",
			input:    "π námundast í 3.14",
			expected: "pí námundast í 3.14",
		},
		{
			name:     "fallback transliteration",
			input:    "ß Ø",
			expected: "ss Ö",
		},
		{
			name:     "labelled span wrapped in SSML",
			input:    "raki (e. humidity)",
			expected: `raki <lang xml:lang="en-GB"> humidity </lang>`,
		},
		{
			name:     "labelled span in the middle of a sentence",
			input:    "Loftið er rakt (e. humid) í dag.",
			expected: `Loftið er rakt <lang xml:lang="en-GB"> humid </lang> í dag.`,
		},
		{
			name:     "brackets become spacers",
			input:    "(hello).",
			expected: ", hello ,",
		},
		{
			name:     "e.g. is not a label",
			input:    "(e.g. this)",
			expected: ", e.g. this ,",
		},
		{
			name:     "digits only",
			input:    "123",
			expected: "123",
		},
		{
			name:     "markup characters dropped",
			input:    "<p> HTML tög </p>",
			expected: "p HTML tög p",
		},
		{
			name:     "foreign spelling transliterated",
			input:    "cwartz",
			expected: "kvarts",
		},
		{
			name:     "typographic dash replaced",
			input:    "1990–2000",
			expected: "1990-2000",
		},
		{
			name:     "soft hyphen deleted",
			input:    "orð\u00adabók",
			expected: "orðabók",
		},
		{
			name:     "no-break space splits words",
			input:    "10\u00a0kr",
			expected: "10 kr",
		},
		{
			name:     "URL passes through",
			input:    "Sjá https://example.com/page?q=1 núna",
			expected: "Sjá https://example.com/page?q=1 núna",
		},
		{
			name:     "punctuation runs collapse",
			input:    "Já!!! Nei?. Kannski ,,",
			expected: "Já! Nei? Kannski ,",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    " \t\n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Clean(tt.input))
		})
	}
}

func TestClean_PunctuationSet(t *testing.T) {
	c := New(Options{PunctuationSet: []rune{',', '.'}}, nil)
	assert.Equal(t, ",", c.Clean(",.:!?"))
}

func TestClean_PreserveStrings(t *testing.T) {
	tests := []struct {
		name     string
		preserve []string
		input    string
		expected string
	}{
		{
			name:     "exact token match only",
			preserve: []string{"zz", "zzzz"},
			input:    "z zz zzz zzzz",
			expected: "s zz sss zzzz",
		},
		{
			name:     "brackets around a preserved token",
			preserve: []string{"Zwoozh"},
			input:    "(Zwoozh) er ekki ízlenzkt orð.",
			expected: ", Zwoozh , er ekki íslenskt orð.",
		},
		{
			name:     "preserved character inside a token",
			preserve: []string{"Z"},
			input:    "Zorro notar ekki hanzka",
			expected: "Zorro notar ekki hanska",
		},
		{
			name:     "trailing punctuation kept on preserved token",
			preserve: []string{"Wi-Fi"},
			input:    "Er Wi-Fi, hér?",
			expected: "Er Wi-Fi, hér?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{PreserveStrings: tt.preserve}, nil)
			assert.Equal(t, tt.expected, c.Clean(tt.input))
		})
	}
}

func TestValidateCharacters(t *testing.T) {
	c := New(Options{}, nil)

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "latin extended", token: "Č", expected: "Tj "},
		{name: "greek", token: "κ", expected: "kappa "},
		{name: "quotes and brackets", token: `(")`, expected: " ,  ,  ,  "},
		{name: "fallback", token: "cwartz", expected: "kvarts "},
		{name: "upper case fallback", token: "Ø", expected: "Ö "},
		{name: "unknown symbol dropped", token: "a€b", expected: "ab "},
		{name: "empty token", token: "", expected: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ValidateCharacters(tt.token))
		})
	}

	t.Run("preserved brackets and quote", func(t *testing.T) {
		c := New(Options{PreserveStrings: []string{")", `"`}}, nil)
		assert.Equal(t, ` , )) , " `, c.ValidateCharacters(`())("`))
	})
}

func TestClean_Replacements(t *testing.T) {
	t.Run("custom character replacement", func(t *testing.T) {
		c := New(Options{CharacterReplacements: map[rune]string{'&': " og "}}, nil)
		assert.Equal(t, "Jón og Gunna", c.Clean("Jón & Gunna"))
	})

	t.Run("custom replacement overrides the base table", func(t *testing.T) {
		c := New(Options{CharacterReplacements: map[rune]string{'π': "pii"}}, nil)
		assert.Equal(t, "pii", c.Clean("π"))
	})

	t.Run("empty replacement deletes", func(t *testing.T) {
		c := New(Options{CharacterReplacements: map[rune]string{'x': ""}}, nil)
		assert.Equal(t, "ae", c.Clean("axe"))
	})

	t.Run("punctuation replacement", func(t *testing.T) {
		c := New(Options{PunctuationReplacement: "-"}, nil)
		assert.Equal(t, "Hæ- þú-", c.Clean("Hæ, þú!"))
	})

	t.Run("drop replacement", func(t *testing.T) {
		c := New(Options{DropReplacement: "_"}, nil)
		assert.Equal(t, "a_b", c.Clean("a€b"))
	})

	t.Run("custom alphabet", func(t *testing.T) {
		c := New(Options{Alphabet: []rune("abc")}, nil)
		assert.Equal(t, "abc ab", c.Clean("abcd abq"))
	})
}

func TestClean_Emojis(t *testing.T) {
	tests := []struct {
		name     string
		emoji    EmojiPolicy
		preserve []string
		input    string
		expected string
	}{
		{
			name:     "default replaces with a period",
			input:    "Halló 😁",
			expected: "Halló .",
		},
		{
			name:     "default handles variation selectors",
			input:    "Ég \u2764\ufe0f þig",
			expected: "Ég . þig",
		},
		{
			name:     "custom replacement",
			emoji:    ReplaceEmojis("!"),
			input:    "Halló 😁",
			expected: "Halló !",
		},
		{
			name:     "empty replacement disables emoji handling",
			emoji:    ReplaceEmojis(""),
			input:    "Halló 😁",
			expected: "Halló",
		},
		{
			name:     "describe",
			emoji:    DescribeEmojis(),
			input:    "🔥",
			expected: "fire",
		},
		{
			name:     "describe then transliterate",
			emoji:    DescribeEmojis(),
			input:    "a 🧹 is used to play quidditch",
			expected: "a broom is used to play kuidditkh",
		},
		{
			name:     "preserve",
			emoji:    PreserveEmojis(),
			input:    "german 🍍: ßßß",
			expected: "german 🍍: ssssss",
		},
		{
			name:     "preserve set wins over describe",
			emoji:    DescribeEmojis(),
			preserve: []string{"🔥"},
			input:    "🔥 🧹",
			expected: "🔥 broom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{Emoji: tt.emoji, PreserveStrings: tt.preserve}, nil)
			assert.Equal(t, tt.expected, c.Clean(tt.input))
		})
	}
}

func TestClean_LabelledSpans(t *testing.T) {
	t.Run("delete", func(t *testing.T) {
		c := New(Options{DeleteLabelledSpans: true}, nil)
		assert.Equal(t, "raki er", c.Clean("raki (e. humidity) er"))
	})

	t.Run("simple markup", func(t *testing.T) {
		c := New(Options{LanguageMarkup: MarkupSimple}, nil)
		assert.Equal(t, "raki <en> humidity </en>", c.Clean("raki (e. humidity)"))
	})

	t.Run("marker without space", func(t *testing.T) {
		c := New(Options{}, nil)
		assert.Equal(t, `<lang xml:lang="en-GB"> dew </lang>`, c.Clean("(e.dew)"))
	})

	t.Run("detection", func(t *testing.T) {
		assert.True(t, IsLabelledSpan("(e. humidity)"))
		assert.True(t, IsLabelledSpan("(e.humidity)"))
		assert.False(t, IsLabelledSpan("(e.g. this)"))
		assert.False(t, IsLabelledSpan("raki(e. humidity)"))
	})
}

func TestClean_ComposeInput(t *testing.T) {
	decomposed := "a\u0301"

	plain := New(Options{}, nil)
	assert.Equal(t, "a", plain.Clean(decomposed))

	composed := New(Options{ComposeInput: true}, nil)
	assert.Equal(t, "á", composed.Clean(decomposed))
}

func TestCleanLines(t *testing.T) {
	c := New(Options{}, nil)
	assert.Equal(t, "pí\nss\n", c.CleanLines("π\r\nß\n"))
}

func TestClean_OutputAlphabetClosure(t *testing.T) {
	c := New(Options{}, nil)

	allowed := make(map[rune]bool)
	for _, r := range IcelandicAlphabet {
		allowed[r] = true
		allowed[unicode.ToUpper(r)] = true
	}
	for _, r := range DefaultPunctuation {
		allowed[r] = true
	}
	for _, r := range " '-" {
		allowed[r] = true
	}

	inputs := []string{
		"Þetta er ÆÐISLEGT! Ça va? Naïve café – 50€ #hashtag @user ∑ ©",
		"Straße in München, Łódź og Kraków; «quoted» [bracketed] {braced}",
		"Σ = α + β × γ ÷ δ",
		"日本語のテキスト and русский текст",
		"tab\there\u200bzero\ufeffwidth",
	}

	for _, input := range inputs {
		out := c.Clean(input)
		for _, r := range out {
			if unicode.IsDigit(r) {
				continue
			}
			assert.Truef(t, allowed[r], "unexpected %q in %q (input %q)", r, out, input)
		}
	}
}

func TestReassemble(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "collapse whitespace", input: "  a   b \n c  ", expected: "a b c"},
		{name: "adjacent run", input: "a.,!? b", expected: "a. b"},
		{name: "spaced run", input: "a , . ! b", expected: "a , b"},
		{name: "single marks untouched", input: "a, b. c", expected: "a, b. c"},
		{name: "semicolon collapses", input: "a;; b", expected: "a; b"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Reassemble(tt.input)
			assert.Equal(t, tt.expected, once)
			assert.Equal(t, once, Reassemble(once), "reassemble must be idempotent")
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "whitespace runs", input: "a  b\tc\n", expected: []string{"a", "b", "c"}},
		{name: "parenthesised span", input: "raki (e. humidity) er", expected: []string{"raki", "(e. humidity)", "er"}},
		{name: "nested parens", input: "((a b) c) d", expected: []string{"((a b) c)", "d"}},
		{name: "unclosed paren absorbs rest", input: "a (b c", expected: []string{"a", "(b c"}},
		{name: "stray closing paren", input: ") a", expected: []string{")", "a"}},
		{name: "empty", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenList(tt.input))
		})
	}

	t.Run("early stop", func(t *testing.T) {
		var got []string
		for tok := range Tokens("a b c d") {
			got = append(got, tok)
			if len(got) == 2 {
				break
			}
		}
		assert.Equal(t, []string{"a", "b"}, got)
	})
}

func TestCleaner_ConcurrentUse(t *testing.T) {
	c := New(Options{Emoji: DescribeEmojis()}, nil)
	input := strings.Repeat("a 🧹 is used to play quidditch ", 20)
	want := c.Clean(input)

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- c.Clean(input) }()
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, want, <-done)
	}
}
