package parsers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// ParserFactory creates the appropriate parser based on file extension
type ParserFactory struct {
	config  *ParserConfig
	parsers map[string]FileParser
}

// NewParserFactory creates a new parser factory with all built-in parsers
func NewParserFactory(config *ParserConfig) *ParserFactory {
	if config == nil {
		config = DefaultParserConfig()
	}

	factory := &ParserFactory{
		config:  config,
		parsers: make(map[string]FileParser),
	}

	// Register built-in parsers
	factory.RegisterParser(NewTextParser(config))
	factory.RegisterParser(NewCSVParser(config))
	factory.RegisterParser(NewTSVParser(config))
	factory.RegisterParser(NewExcelParser(config))
	factory.RegisterParser(NewJSONParser(config))
	factory.RegisterParser(NewJSONLParser(config))
	factory.RegisterParser(NewHTMLParser(config, nil))

	return factory
}

// RegisterParser registers a custom parser
func (f *ParserFactory) RegisterParser(parser FileParser) {
	for _, ext := range parser.SupportedFormats() {
		f.parsers[normalizeExt(ext)] = parser
	}
}

// GetParser returns the appropriate parser for a file extension
func (f *ParserFactory) GetParser(fileExt string) (FileParser, error) {
	parser, exists := f.parsers[normalizeExt(fileExt)]
	if !exists {
		return nil, apperrors.UnsupportedFormat(fileExt)
	}
	return parser, nil
}

// GetParserForFile returns the appropriate parser based on file path
func (f *ParserFactory) GetParserForFile(filePath string) (FileParser, error) {
	return f.GetParser(filepath.Ext(filePath))
}

// ParseFile is a convenience method that automatically selects and uses the correct parser
func (f *ParserFactory) ParseFile(ctx context.Context, filePath string) (*ParseResult, error) {
	parser, err := f.GetParserForFile(filePath)
	if err != nil {
		return nil, err
	}
	return parser.Parse(ctx, filePath)
}

// ParseSegments parses filePath and extracts the configured text fields
func (f *ParserFactory) ParseSegments(ctx context.Context, filePath string) ([]Segment, *ParseResult, error) {
	result, err := f.ParseFile(ctx, filePath)
	if err != nil {
		return nil, nil, err
	}
	return result.Segments(result.TextFields(f.config.TextFields)), result, nil
}

// SupportedFormats returns all supported file extensions, sorted
func (f *ParserFactory) SupportedFormats() []string {
	formats := make([]string, 0, len(f.parsers))
	for ext := range f.parsers {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// IsSupported checks if a file extension is supported
func (f *ParserFactory) IsSupported(fileExt string) bool {
	_, exists := f.parsers[normalizeExt(fileExt)]
	return exists
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
