package parsers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// CSVParser parses CSV and TSV files
type CSVParser struct {
	config *ParserConfig
	comma  rune
	format string
}

// NewCSVParser creates a new CSV parser
func NewCSVParser(config *ParserConfig) *CSVParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &CSVParser{config: config, comma: ',', format: "CSV"}
}

// NewTSVParser creates a parser for tab-separated files
func NewTSVParser(config *ParserConfig) *CSVParser {
	p := NewCSVParser(config)
	p.comma = '\t'
	p.format = "TSV"
	return p
}

// Parse reads and parses a CSV file from disk
func (p *CSVParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses CSV data from an io.Reader
func (p *CSVParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = p.comma
	csvReader.TrimLeadingSpace = p.config.TrimWhitespace
	csvReader.FieldsPerRecord = -1 // Allow variable number of fields per record
	csvReader.LazyQuotes = true

	// Read header row
	header, err := csvReader.Read()
	if err != nil {
		return nil, apperrors.FileParseError(fmt.Errorf("failed to read header: %w", err), p.format)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]Record, 0, p.config.MaxRowsInMemory)
	totalRows := 0
	skippedRows := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		totalRows++
		if err != nil {
			// Skip malformed rows but continue parsing
			skippedRows++
			continue
		}

		if p.config.SkipEmptyRows && isEmptyRow(row) {
			skippedRows++
			continue
		}

		records = append(records, rowToRecord(header, row, p.config.TrimWhitespace))
	}

	return &ParseResult{
		Records:     records,
		TotalRows:   totalRows,
		SkippedRows: skippedRows,
		Columns:     header,
		Format:      p.format,
	}, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *CSVParser) SupportedFormats() []string {
	if p.comma == '\t' {
		return []string{".tsv"}
	}
	return []string{".csv"}
}
