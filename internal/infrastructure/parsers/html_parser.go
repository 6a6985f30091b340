package parsers

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/linearizer"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/markup"
	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// HTMLParser linearizes the content container of an HTML or XHTML page and
// returns one record per line of the flattened text
type HTMLParser struct {
	config *ParserConfig
	logger *slog.Logger
}

// NewHTMLParser creates a new markup parser
func NewHTMLParser(config *ParserConfig, logger *slog.Logger) *HTMLParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLParser{config: config, logger: logger}
}

// Parse reads and parses a markup file from disk
func (p *HTMLParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream parses markup from r
func (p *HTMLParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	doc, err := markup.Parse(r)
	if err != nil {
		return nil, apperrors.FileParseError(err, "HTML")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := linearizer.CleanHTML(doc, linearizer.Options{
		ContentSelector: p.config.HTMLSelector,
		TagPunctuation:  p.config.TagPunctuation,
	}, p.logger)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		records = append(records, Record{TextField: line})
	}

	return &ParseResult{
		Records:   records,
		TotalRows: len(records),
		Columns:   []string{TextField},
		Format:    "HTML",
	}, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *HTMLParser) SupportedFormats() []string {
	return []string{".html", ".htm", ".xhtml"}
}
