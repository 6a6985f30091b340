package parsers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// JSONLParser parses newline-delimited JSON
type JSONLParser struct {
	config *ParserConfig
}

// NewJSONLParser creates a new JSONL parser
func NewJSONLParser(config *ParserConfig) *JSONLParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &JSONLParser{config: config}
}

// Parse reads and parses a JSONL file from disk
func (p *JSONLParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses JSONL data from an io.Reader. Malformed lines
// are counted as skipped.
func (p *JSONLParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	// Set a larger buffer for long documents (max 4MB per line)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	records := make([]Record, 0, p.config.MaxRowsInMemory)
	totalRows := 0
	skippedRows := 0

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		totalRows++

		if len(line) == 0 {
			skippedRows++
			continue
		}

		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			skippedRows++
			continue
		}

		if p.config.SkipEmptyRows && len(record) == 0 {
			skippedRows++
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, apperrors.FileParseError(err, "JSONL")
	}

	return &ParseResult{
		Records:     records,
		TotalRows:   totalRows,
		SkippedRows: skippedRows,
		Columns:     columnsOf(records),
		Format:      "JSONL",
	}, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *JSONLParser) SupportedFormats() []string {
	return []string{".jsonl", ".ndjson"}
}
