package parsers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTextParser_KeepsEveryLine(t *testing.T) {
	result, err := NewTextParser(nil).ParseStream(context.Background(),
		strings.NewReader("Fyrsta lína\r\n\nπ er 3.14\n"))
	require.NoError(t, err)

	assert.Equal(t, "TXT", result.Format)
	assert.Equal(t, []Segment{
		{Index: 0, Field: "text", Text: "Fyrsta lína"},
		{Index: 1, Field: "text", Text: ""},
		{Index: 2, Field: "text", Text: "π er 3.14"},
	}, result.Segments(nil))
}

func TestCSVParser_ParseStream(t *testing.T) {
	content := `id, text ,lang
1,"Halló, heimur",is
2,,is
,,
3,Zorro notar ekki hanzka,is
`
	result, err := NewCSVParser(nil).ParseStream(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "text", "lang"}, result.Columns)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.SkippedRows)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "Halló, heimur", result.Records[0]["text"])
	assert.Equal(t, "", result.Records[1]["text"])

	segments := result.Segments([]string{"text"})
	require.Len(t, segments, 3)
	assert.Equal(t, Segment{Index: 2, Field: "text", Text: "Zorro notar ekki hanzka"}, segments[2])
}

func TestCSVParser_MissingColumns(t *testing.T) {
	content := "a,b,c\n1,2\n"
	result, err := NewCSVParser(nil).ParseStream(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "", result.Records[0]["c"])
}

func TestTSVParser(t *testing.T) {
	content := "text\tnote\nraki (e. humidity)\tx\n"
	result, err := NewTSVParser(nil).ParseStream(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "TSV", result.Format)
	assert.Equal(t, "raki (e. humidity)", result.Records[0]["text"])
}

func TestJSONParser(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		content := `[{"text": "ß Ø", "id": 1}, {"text": "cwartz", "id": 2, "extra": true}]`
		result, err := NewJSONParser(nil).ParseStream(context.Background(), strings.NewReader(content))
		require.NoError(t, err)

		assert.Equal(t, []string{"extra", "id", "text"}, result.Columns)
		assert.Equal(t, []Segment{
			{Index: 0, Field: "text", Text: "ß Ø"},
			{Index: 1, Field: "text", Text: "cwartz"},
		}, result.Segments(result.TextFields([]string{"text", "body"})))
	})

	t.Run("single object", func(t *testing.T) {
		result, err := NewJSONParser(nil).ParseStream(context.Background(), strings.NewReader(` {"body": "halló"}`))
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, []string{"body"}, result.TextFields([]string{"text"}))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewJSONParser(nil).ParseStream(context.Background(), strings.NewReader(`[{"text": }]`))
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeFileParseError))
	})
}

func TestJSONLParser_SkipsBadLines(t *testing.T) {
	content := `{"text": "einn"}

not json
{"text": "tveir"}
{}
`
	result, err := NewJSONLParser(nil).ParseStream(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 3, result.SkippedRows)
	assert.Equal(t, []Segment{
		{Index: 0, Field: "text", Text: "einn"},
		{Index: 1, Field: "text", Text: "tveir"},
	}, result.Segments([]string{"text"}))
}

func TestExcelParser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "text"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, "π námundast í 3.14"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, " ß Ø "}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result, err := NewExcelParser(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "XLSX", result.Format)
	assert.Equal(t, []string{"id", "text"}, result.Columns)
	assert.Equal(t, []Segment{
		{Index: 0, Field: "text", Text: "π námundast í 3.14"},
		{Index: 1, Field: "text", Text: "ß Ø"},
	}, result.Segments([]string{"text"}))
}

func TestHTMLParser(t *testing.T) {
	page := `<html><body><div class="content-text"><h1>Veður</h1>
<p>Rigning í dag</p></div><div class="footer">Hafðu samband</div></body></html>`

	cfg := DefaultParserConfig()
	cfg.HTMLSelector = "div.content-text"
	result, err := NewHTMLParser(cfg, nil).ParseStream(context.Background(), strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "HTML", result.Format)
	assert.Equal(t, []Segment{
		{Index: 0, Field: "text", Text: "Veður."},
		{Index: 1, Field: "text", Text: "Rigning í dag."},
	}, result.Segments(nil))

	cfg.HTMLSelector = "article"
	_, err = NewHTMLParser(cfg, nil).ParseStream(context.Background(), strings.NewReader(page))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeContainerNotFound))
}

func TestParserFactory_GetParser(t *testing.T) {
	factory := NewParserFactory(nil)

	tests := []struct {
		ext      string
		expected string
	}{
		{".txt", "*parsers.TextParser"},
		{"md", "*parsers.TextParser"},
		{".CSV", "*parsers.CSVParser"},
		{".tsv", "*parsers.CSVParser"},
		{".xlsx", "*parsers.ExcelParser"},
		{".json", "*parsers.JSONParser"},
		{".ndjson", "*parsers.JSONLParser"},
		{".xhtml", "*parsers.HTMLParser"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			parser, err := factory.GetParser(tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typeName(parser))
		})
	}

	_, err := factory.GetParser(".pdf")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnsupportedFormat))
	assert.False(t, factory.IsSupported(".pdf"))
	assert.Contains(t, factory.SupportedFormats(), ".html")
}

func TestParserFactory_ParseSegments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "input.csv", "id,body\n1,Halló\n2,Bless\n")

	cfg := DefaultParserConfig()
	cfg.TextFields = []string{"body"}
	segments, result, err := NewParserFactory(cfg).ParseSegments(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "CSV", result.Format)
	assert.Equal(t, []Segment{
		{Index: 0, Field: "body", Text: "Halló"},
		{Index: 1, Field: "body", Text: "Bless"},
	}, segments)
}

func TestParserConfig_MaxFileSize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.txt", strings.Repeat("a", 2048))

	cfg := DefaultParserConfig()
	cfg.MaxFileSize = 1024
	_, err := NewTextParser(cfg).Parse(context.Background(), path)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeFileTooLarge))
}

func TestContext_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTextParser(nil).ParseStream(ctx, strings.NewReader("a\nb\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *TextParser:
		return "*parsers.TextParser"
	case *CSVParser:
		return "*parsers.CSVParser"
	case *ExcelParser:
		return "*parsers.ExcelParser"
	case *JSONParser:
		return "*parsers.JSONParser"
	case *JSONLParser:
		return "*parsers.JSONLParser"
	case *HTMLParser:
		return "*parsers.HTMLParser"
	}
	return "unknown"
}
