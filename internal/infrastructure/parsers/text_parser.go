package parsers

import (
	"bufio"
	"context"
	"io"
	"strings"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// TextField is the column name used for plain text and markup input
const TextField = "text"

// TextParser turns every line of a plain text file into one record. Empty
// lines are kept so the cleaned output lines up with the input.
type TextParser struct {
	config *ParserConfig
}

// NewTextParser creates a new plain text parser
func NewTextParser(config *ParserConfig) *TextParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &TextParser{config: config}
}

// Parse reads and parses a text file from disk
func (p *TextParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream reads lines from r
func (p *TextParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	records := make([]Record, 0, p.config.MaxRowsInMemory)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records = append(records, Record{TextField: strings.TrimSuffix(scanner.Text(), "\r")})
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.FileParseError(err, "TXT")
	}

	return &ParseResult{
		Records:   records,
		TotalRows: len(records),
		Columns:   []string{TextField},
		Format:    "TXT",
	}, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *TextParser) SupportedFormats() []string {
	return []string{".txt", ".text", ".md"}
}
