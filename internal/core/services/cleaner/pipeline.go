package cleaner

import (
	"fmt"
)

// Pipeline runs texts through one cleaner profile
type Pipeline struct {
	cleaner BaseCleaner
	version string
}

// NewPipeline creates a new cleaning pipeline.
// profile can be a version (e.g., "v1") or an alias (e.g., "icelandic").
func NewPipeline(profile string, customConfig map[string]interface{}) (*Pipeline, error) {
	c, err := Create(profile, customConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	return &Pipeline{
		cleaner: c,
		version: c.GetVersion(),
	}, nil
}

// CleanText processes a single text string
func (p *Pipeline) CleanText(text string) string {
	return p.cleaner.Process(text)
}

// CleanLines processes a multi-line document line by line
func (p *Pipeline) CleanLines(text string) string {
	return p.cleaner.ProcessLines(text)
}

// CleanBatch processes a batch of texts
func (p *Pipeline) CleanBatch(texts []string) []string {
	results := make([]string, len(texts))
	for i, text := range texts {
		results[i] = p.cleaner.Process(text)
	}
	return results
}

// GetVersion returns the profile version being used
func (p *Pipeline) GetVersion() string {
	return p.version
}

// GetName returns the profile name
func (p *Pipeline) GetName() string {
	return p.cleaner.GetName()
}

// GetDescription returns the profile description
func (p *Pipeline) GetDescription() string {
	return p.cleaner.GetDescription()
}

// GetPipelineSteps returns the processing steps
func (p *Pipeline) GetPipelineSteps() []string {
	return p.cleaner.GetPipelineSteps()
}

// GetConfig returns the effective configuration of the profile
func (p *Pipeline) GetConfig() map[string]interface{} {
	return p.cleaner.GetDefaultConfig()
}
