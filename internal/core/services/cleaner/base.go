package cleaner

// BaseCleaner defines the interface that all cleaner profiles implement.
// Profiles differ in their default Options; the pipeline itself is shared.
type BaseCleaner interface {
	// Process cleans a single text string
	Process(text string) string

	// ProcessLines cleans a multi-line document line by line
	ProcessLines(text string) string

	// GetVersion returns the version identifier (e.g., "v1", "v1-simple")
	GetVersion() string

	// GetName returns a human-readable name
	GetName() string

	// GetDescription returns what this profile does
	GetDescription() string

	// GetDefaultConfig returns the effective configuration in override format
	GetDefaultConfig() map[string]interface{}

	// GetPipelineSteps returns the list of processing steps in order
	GetPipelineSteps() []string
}

// ProcessingStep represents a single text transformation function
type ProcessingStep func(string) string

// pipelineSteps names the stages every profile runs, in order
var pipelineSteps = []string{
	"compose_input",
	"process_emojis",
	"tokenize",
	"match_preserved_tokens",
	"handle_labelled_spans",
	"pass_urls",
	"validate_characters",
	"collapse_whitespace",
	"remove_consecutive_punctuation",
}
