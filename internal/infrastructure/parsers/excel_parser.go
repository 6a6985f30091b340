package parsers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// ExcelParser parses the first sheet of an .xlsx workbook
type ExcelParser struct {
	config *ParserConfig
}

// NewExcelParser creates a new Excel parser
func NewExcelParser(config *ParserConfig) *ExcelParser {
	if config == nil {
		config = DefaultParserConfig()
	}
	return &ExcelParser{config: config}
}

// Parse reads and parses an Excel file from disk
func (p *ExcelParser) Parse(ctx context.Context, filePath string) (*ParseResult, error) {
	file, err := openChecked(filePath, p.config.MaxFileSize)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return p.ParseStream(ctx, file)
}

// ParseStream reads and parses Excel data from an io.Reader
func (p *ExcelParser) ParseStream(ctx context.Context, r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.FileParseError(err, "XLSX")
	}
	defer f.Close()

	return p.parseWorkbook(ctx, f)
}

func (p *ExcelParser) parseWorkbook(ctx context.Context, f *excelize.File) (*ParseResult, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, apperrors.InvalidFile("no sheets found in workbook")
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheetName, err)
	}
	defer rows.Close()

	result := &ParseResult{
		Records: make([]Record, 0, p.config.MaxRowsInMemory),
		Columns: []string{},
		Format:  "XLSX",
	}

	first := true
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		if first {
			first = false
			for _, col := range row {
				result.Columns = append(result.Columns, strings.TrimSpace(col))
			}
			continue
		}

		result.TotalRows++
		if p.config.SkipEmptyRows && isEmptyRow(row) {
			result.SkippedRows++
			continue
		}
		result.Records = append(result.Records, rowToRecord(result.Columns, row, p.config.TrimWhitespace))
	}

	return result, nil
}

// SupportedFormats returns the file extensions this parser supports
func (p *ExcelParser) SupportedFormats() []string {
	return []string{".xlsx", ".xlsm"}
}
