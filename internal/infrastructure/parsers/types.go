package parsers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// Record represents a single input row as a map
type Record map[string]interface{}

// Segment is one piece of text to clean, addressed by record index and field
type Segment struct {
	Index int    `json:"index" msgpack:"index"`
	Field string `json:"field" msgpack:"field"`
	Text  string `json:"text" msgpack:"text"`
}

// ParseResult contains parsed records and parsing statistics
type ParseResult struct {
	Records     []Record
	TotalRows   int
	SkippedRows int
	Columns     []string
	Format      string
}

// Segments returns the string values of fields for every record, in record
// order. Fields missing from a record or holding non-string values are skipped.
// With no fields, every column is used.
func (r *ParseResult) Segments(fields []string) []Segment {
	if len(fields) == 0 {
		fields = r.Columns
	}

	segments := make([]Segment, 0, len(r.Records)*len(fields))
	for i, record := range r.Records {
		for _, field := range fields {
			text, ok := record[field].(string)
			if !ok {
				continue
			}
			segments = append(segments, Segment{Index: i, Field: field, Text: text})
		}
	}
	return segments
}

// TextFields returns the configured fields present in the result's columns,
// or all columns when none of them are present.
func (r *ParseResult) TextFields(configured []string) []string {
	present := make(map[string]bool, len(r.Columns))
	for _, c := range r.Columns {
		present[c] = true
	}

	var fields []string
	for _, f := range configured {
		if present[f] {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return r.Columns
	}
	return fields
}

// FileParser is the interface all parsers must implement
type FileParser interface {
	// Parse reads and parses the file from the given path
	Parse(ctx context.Context, filePath string) (*ParseResult, error)

	// ParseStream reads and parses from an io.Reader
	ParseStream(ctx context.Context, reader io.Reader) (*ParseResult, error)

	// SupportedFormats returns the file extensions this parser supports
	SupportedFormats() []string
}

// ParserConfig holds configuration for all parsers
type ParserConfig struct {
	// MaxRowsInMemory is the initial capacity of the record slice
	MaxRowsInMemory int

	// SkipEmptyRows determines if empty rows should be skipped (tabular formats only)
	SkipEmptyRows bool

	// TrimWhitespace determines if cell values should be trimmed
	TrimWhitespace bool

	// MaxFileSize is the maximum file size in bytes (0 = unlimited)
	MaxFileSize int64

	// TextFields names the columns or JSON fields that hold text to clean
	TextFields []string

	// HTMLSelector is the CSS selector of the content container in markup input
	HTMLSelector string

	// TagPunctuation overrides the linearizer's tag → punctuation map
	TagPunctuation map[string]string
}

// DefaultParserConfig returns sensible defaults
func DefaultParserConfig() *ParserConfig {
	return &ParserConfig{
		MaxRowsInMemory: 10000,
		SkipEmptyRows:   true,
		TrimWhitespace:  true,
		MaxFileSize:     100 * 1024 * 1024, // 100 MB
		TextFields:      []string{"text"},
	}
}

// openChecked opens filePath after checking it against the size limit
func openChecked(filePath string, maxSize int64) (*os.File, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if maxSize > 0 {
		stat, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if stat.Size() > maxSize {
			file.Close()
			return nil, apperrors.FileTooLarge(maxSize / (1024 * 1024)).
				WithDetails("size", stat.Size()).
				WithDetails("path", filePath)
		}
	}

	return file, nil
}

// isEmptyRow checks if a row contains only empty strings
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowToRecord maps a row onto header names, filling missing columns with ""
func rowToRecord(header, row []string, trim bool) Record {
	record := make(Record, len(header))
	for i, col := range header {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		if trim {
			value = strings.TrimSpace(value)
		}
		record[col] = value
	}
	return record
}
