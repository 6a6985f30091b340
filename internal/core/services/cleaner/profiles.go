package cleaner

import (
	"log/slog"
)

// Profile is a named cleaner configuration
type Profile struct {
	version     string
	name        string
	description string
	cleaner     *Cleaner
}

// NewProfile applies custom overrides to defaults and builds the profile's
// Cleaner. Invalid overrides are logged and returned as INVALID_CONFIG; the
// defaults are not modified.
func NewProfile(version, name, description string, defaults Options, custom map[string]interface{}, logger *slog.Logger) (*Profile, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts, err := ApplyOverrides(defaults, custom)
	if err != nil {
		logger.Warn("invalid cleaner configuration, overrides not applied",
			slog.String("profile", version),
			slog.Any("error", err))
		return nil, err
	}

	return &Profile{
		version:     version,
		name:        name,
		description: description,
		cleaner:     New(opts, logger.With(slog.String("profile", version))),
	}, nil
}

// NewIcelandicProfile is the default profile: Icelandic alphabet, emojis
// replaced by ".", labelled English spans wrapped in SSML.
func NewIcelandicProfile(custom map[string]interface{}) (*Profile, error) {
	return NewProfile("v1", "Icelandic TTS Cleaning",
		"Cleans text to the Icelandic alphabet for speech synthesis; labelled English spans are wrapped in SSML lang elements",
		Options{LanguageMarkup: MarkupSSML}, custom, nil)
}

// NewIcelandicSimpleProfile wraps labelled spans in <en> markers
func NewIcelandicSimpleProfile(custom map[string]interface{}) (*Profile, error) {
	return NewProfile("v1-simple", "Icelandic Cleaning (simple markup)",
		"Like v1, but labelled English spans are wrapped in <en> ... </en>",
		Options{LanguageMarkup: MarkupSimple}, custom, nil)
}

// NewIcelandicStrictProfile deletes labelled spans and reads emojis out
func NewIcelandicStrictProfile(custom map[string]interface{}) (*Profile, error) {
	return NewProfile("v1-strict", "Icelandic Cleaning (no translations)",
		"Like v1, but labelled English spans are deleted and emojis are replaced by their description",
		Options{DeleteLabelledSpans: true, Emoji: DescribeEmojis()}, custom, nil)
}

// Process cleans text
func (p *Profile) Process(text string) string {
	return p.cleaner.Clean(text)
}

// ProcessLines cleans text line by line
func (p *Profile) ProcessLines(text string) string {
	return p.cleaner.CleanLines(text)
}

// Cleaner exposes the underlying Cleaner
func (p *Profile) Cleaner() *Cleaner {
	return p.cleaner
}

func (p *Profile) GetVersion() string {
	return p.version
}

func (p *Profile) GetName() string {
	return p.name
}

func (p *Profile) GetDescription() string {
	return p.description
}

func (p *Profile) GetDefaultConfig() map[string]interface{} {
	return p.cleaner.options.toConfigMap()
}

func (p *Profile) GetPipelineSteps() []string {
	return append([]string(nil), pipelineSteps...)
}
