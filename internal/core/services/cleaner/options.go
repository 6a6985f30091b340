package cleaner

import (
	"fmt"
	"sort"
	"unicode/utf8"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// EmojiMode identifies the single active emoji policy
type EmojiMode int

const (
	// EmojiDefault resolves to replacing emojis with DefaultEmojiReplacement
	EmojiDefault EmojiMode = iota
	EmojiNone
	EmojiReplace
	EmojiDescribe
	EmojiPreserve
)

func (m EmojiMode) String() string {
	switch m {
	case EmojiNone:
		return "none"
	case EmojiReplace:
		return "replace"
	case EmojiDescribe:
		return "describe"
	case EmojiPreserve:
		return "preserve"
	default:
		return "default"
	}
}

// EmojiPolicy is a tagged variant: exactly one mode is active and only the
// replace mode carries a replacement string.
type EmojiPolicy struct {
	mode        EmojiMode
	replacement string
}

// PreserveEmojis leaves emojis untouched
func PreserveEmojis() EmojiPolicy { return EmojiPolicy{mode: EmojiPreserve} }

// DescribeEmojis replaces emojis with their description
func DescribeEmojis() EmojiPolicy { return EmojiPolicy{mode: EmojiDescribe} }

// NoEmojiHandling disables emoji processing before tokenization
func NoEmojiHandling() EmojiPolicy { return EmojiPolicy{mode: EmojiNone} }

// ReplaceEmojis replaces every emoji with s. An empty s means no emoji handling.
func ReplaceEmojis(s string) EmojiPolicy {
	if s == "" {
		return NoEmojiHandling()
	}
	return EmojiPolicy{mode: EmojiReplace, replacement: s}
}

// Mode returns the active policy
func (p EmojiPolicy) Mode() EmojiMode {
	if p.mode == EmojiDefault {
		return EmojiReplace
	}
	return p.mode
}

// Replacement returns the replacement string, empty unless the mode is EmojiReplace
func (p EmojiPolicy) Replacement() string {
	switch p.mode {
	case EmojiDefault:
		return DefaultEmojiReplacement
	case EmojiReplace:
		return p.replacement
	}
	return ""
}

// Options configures a Cleaner. The zero value gives the default Icelandic
// configuration.
type Options struct {
	// CharacterReplacements are merged over the base replacement table
	CharacterReplacements map[rune]string
	// PunctuationReplacement, when set, replaces every preserved punctuation mark
	PunctuationReplacement string
	// Alphabet overrides the target alphabet (lower-case letters)
	Alphabet []rune
	// PunctuationSet overrides the preserved punctuation marks
	PunctuationSet []rune
	// PreserveStrings are exempt from any transformation
	PreserveStrings []string
	Emoji           EmojiPolicy
	// DeleteLabelledSpans drops "(e. ...)" spans instead of wrapping them
	DeleteLabelledSpans bool
	LanguageMarkup      LanguageMarkup
	// DropReplacement is written in place of characters that match no rule
	DropReplacement string
	// ComposeInput applies canonical composition before cleaning
	ComposeInput bool
}

// Clone returns a deep copy of o
func (o Options) Clone() Options {
	out := o
	if o.CharacterReplacements != nil {
		out.CharacterReplacements = make(map[rune]string, len(o.CharacterReplacements))
		for k, v := range o.CharacterReplacements {
			out.CharacterReplacements[k] = v
		}
	}
	out.Alphabet = append([]rune(nil), o.Alphabet...)
	out.PunctuationSet = append([]rune(nil), o.PunctuationSet...)
	out.PreserveStrings = append([]string(nil), o.PreserveStrings...)
	return out
}

// ApplyOverrides merges loosely typed overrides (as decoded from JSON, YAML or
// viper) into a copy of o. On a type mismatch o is returned unchanged together
// with an INVALID_CONFIG error.
func ApplyOverrides(o Options, custom map[string]interface{}) (Options, error) {
	out := o.Clone()
	if len(custom) == 0 {
		return out, nil
	}

	if v, ok := custom["character_replacements"]; ok {
		m, err := toRuneMap("character_replacements", v)
		if err != nil {
			return o, err
		}
		if out.CharacterReplacements == nil {
			out.CharacterReplacements = make(map[rune]string, len(m))
		}
		for k, r := range m {
			out.CharacterReplacements[k] = r
		}
	}
	if v, ok := custom["alphabet"]; ok {
		runes, err := toRuneList("alphabet", v)
		if err != nil {
			return o, err
		}
		out.Alphabet = runes
	}
	if v, ok := custom["punctuation_set"]; ok {
		runes, err := toRuneList("punctuation_set", v)
		if err != nil {
			return o, err
		}
		out.PunctuationSet = runes
	}
	if v, ok := custom["preserve_strings"]; ok {
		list, err := toStringList("preserve_strings", v)
		if err != nil {
			return o, err
		}
		out.PreserveStrings = list
	}

	strFields := map[string]*string{
		"punctuation_replacement": &out.PunctuationReplacement,
		"drop_replacement":        &out.DropReplacement,
	}
	for key, dst := range strFields {
		if v, ok := custom[key]; ok {
			s, ok := v.(string)
			if !ok {
				return o, apperrors.InvalidConfig(key, "string", v)
			}
			*dst = s
		}
	}
	if v, ok := custom["language_markup"]; ok {
		s, ok := v.(string)
		if !ok {
			return o, apperrors.InvalidConfig("language_markup", "string", v)
		}
		switch LanguageMarkup(s) {
		case MarkupSSML, MarkupSimple:
			out.LanguageMarkup = LanguageMarkup(s)
		default:
			return o, apperrors.InvalidConfig("language_markup", `"ssml" or "simple"`, v)
		}
	}

	boolFields := map[string]*bool{
		"delete_labelled_spans": &out.DeleteLabelledSpans,
		"compose_input":         &out.ComposeInput,
	}
	for key, dst := range boolFields {
		if v, ok := custom[key]; ok {
			b, ok := v.(bool)
			if !ok {
				return o, apperrors.InvalidConfig(key, "bool", v)
			}
			*dst = b
		}
	}

	policy, err := emojiPolicyFromMap(out.Emoji, custom)
	if err != nil {
		return o, err
	}
	out.Emoji = policy

	return out, nil
}

// emojiPolicyFromMap resolves the emoji flags by precedence:
// preserve > describe > replacement string.
func emojiPolicyFromMap(current EmojiPolicy, custom map[string]interface{}) (EmojiPolicy, error) {
	flag := func(key string) (bool, error) {
		v, ok := custom[key]
		if !ok {
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return false, apperrors.InvalidConfig(key, "bool", v)
		}
		return b, nil
	}

	preserve, err := flag("preserve_emojis")
	if err != nil {
		return current, err
	}
	describe, err := flag("describe_emojis")
	if err != nil {
		return current, err
	}

	switch {
	case preserve:
		return PreserveEmojis(), nil
	case describe:
		return DescribeEmojis(), nil
	}
	if _, ok := custom["preserve_emojis"]; ok && current.mode == EmojiPreserve {
		current = EmojiPolicy{}
	}
	if _, ok := custom["describe_emojis"]; ok && current.mode == EmojiDescribe {
		current = EmojiPolicy{}
	}

	if v, ok := custom["emoji_replacement"]; ok {
		s, ok := v.(string)
		if !ok {
			return current, apperrors.InvalidConfig("emoji_replacement", "string", v)
		}
		return ReplaceEmojis(s), nil
	}
	return current, nil
}

func toRuneMap(key string, v interface{}) (map[rune]string, error) {
	out := make(map[rune]string)
	add := func(k string, val interface{}) error {
		s, ok := val.(string)
		if !ok {
			return apperrors.InvalidConfig(key, "map of single characters to strings", val)
		}
		if utf8.RuneCountInString(k) != 1 {
			return apperrors.InvalidConfig(key, "single-character keys", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		out[r] = s
		return nil
	}

	switch m := v.(type) {
	case map[rune]string:
		for k, s := range m {
			out[k] = s
		}
	case map[string]string:
		for k, s := range m {
			if err := add(k, s); err != nil {
				return nil, err
			}
		}
	case map[string]interface{}:
		for k, s := range m {
			if err := add(k, s); err != nil {
				return nil, err
			}
		}
	default:
		return nil, apperrors.InvalidConfig(key, "mapping", v)
	}
	return out, nil
}

func toRuneList(key string, v interface{}) ([]rune, error) {
	switch t := v.(type) {
	case string:
		return []rune(t), nil
	case []rune:
		return append([]rune(nil), t...), nil
	}

	list, err := toStringList(key, v)
	if err != nil {
		return nil, err
	}
	out := make([]rune, 0, len(list))
	for _, s := range list {
		if utf8.RuneCountInString(s) != 1 {
			return nil, apperrors.InvalidConfig(key, "list of single characters", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		out = append(out, r)
	}
	return out, nil
}

func toStringList(key string, v interface{}) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, apperrors.InvalidConfig(key, "list of strings", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, apperrors.InvalidConfig(key, "list of strings", v)
}

// toConfigMap renders o in the override format accepted by ApplyOverrides
func (o Options) toConfigMap() map[string]interface{} {
	repl := make(map[string]interface{}, len(o.CharacterReplacements))
	for k, v := range o.CharacterReplacements {
		repl[string(k)] = v
	}
	alphabet := o.Alphabet
	if len(alphabet) == 0 {
		alphabet = IcelandicAlphabet
	}
	punct := o.PunctuationSet
	if len(punct) == 0 {
		punct = DefaultPunctuation
	}
	preserve := append([]string(nil), o.PreserveStrings...)
	sort.Strings(preserve)

	markup := o.LanguageMarkup
	if markup == "" {
		markup = MarkupSSML
	}

	return map[string]interface{}{
		"character_replacements":  repl,
		"punctuation_replacement": o.PunctuationReplacement,
		"alphabet":                string(alphabet),
		"punctuation_set":         string(punct),
		"preserve_strings":        preserve,
		"preserve_emojis":         o.Emoji.Mode() == EmojiPreserve,
		"describe_emojis":         o.Emoji.Mode() == EmojiDescribe,
		"emoji_replacement":       o.Emoji.Replacement(),
		"delete_labelled_spans":   o.DeleteLabelledSpans,
		"language_markup":         string(markup),
		"drop_replacement":        o.DropReplacement,
		"compose_input":           o.ComposeInput,
	}
}

func (o Options) String() string {
	return fmt.Sprintf("Options{emoji=%s markup=%s deleteLabelled=%t preserve=%d}",
		o.Emoji.Mode(), o.LanguageMarkup, o.DeleteLabelledSpans, len(o.PreserveStrings))
}
