package parsers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// JSONParser parses a JSON array of objects or a single object
type JSONParser struct {
	config *ParserConfig
}

// NewJSONParser creates a new JSON parser
func NewJSONParser(config *ParserConfig) *JSONParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &JSONParser{config: config}
}

// Parse reads and parses a JSON file from disk
func (p *JSONParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses JSON data from an io.Reader
func (p *JSONParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.FileParseError(err, "JSON")
	}

	var records []Record
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := decoder.Token(); err != nil {
			return nil, apperrors.FileParseError(err, "JSON")
		}
		for decoder.More() {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			var record Record
			if err := decoder.Decode(&record); err != nil {
				return nil, apperrors.FileParseError(err, "JSON")
			}
			records = append(records, record)
		}
	} else {
		// Single object
		var record Record
		if err := json.Unmarshal(trimmed, &record); err != nil {
			return nil, apperrors.FileParseError(err, "JSON")
		}
		records = []Record{record}
	}

	return &ParseResult{
		Records:   records,
		TotalRows: len(records),
		Columns:   columnsOf(records),
		Format:    "JSON",
	}, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *JSONParser) SupportedFormats() []string {
	return []string{".json"}
}

// columnsOf returns the sorted union of record keys
func columnsOf(records []Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, record := range records {
		for key := range record {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
