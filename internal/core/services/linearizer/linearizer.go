// Package linearizer flattens a parsed markup tree into plain text for the
// cleaner. Parsing is left to an adapter that implements Document.
package linearizer

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// TagNode is an element in a mutable markup tree
type TagNode interface {
	// FindAll returns descendant elements named tag in document order
	FindAll(tag string) []TagNode
	// InsertBefore inserts text as a sibling directly before the node
	InsertBefore(text string)
	// AppendText appends text as the node's last child
	AppendText(text string)
	// Remove detaches the node and its subtree
	Remove()
	// Text returns the concatenated text of the subtree
	Text() string
}

// Document resolves the content container of a parsed page
type Document interface {
	Select(selector string) (TagNode, bool)
}

// DefaultContentSelector matches the content container of the pages this
// service was first built for
const DefaultContentSelector = "div.content-text"

var defaultTagPunctuation = map[string]string{
	"ul": ".", "ol": ".", "li": ".",
	"dl": ".", "dt": ".", "dd": ".",
	"table": ".", "tr": ".", "td": ".",
	"span": ".", "strong": ".",
	"h1": ".", "h2": ".", "h3": ".", "h4": ".", "h5": ".", "h6": ".",
	"p": ".", "br": ".", "hr": ".",
}

// DefaultTagPunctuation returns a fresh copy of the default tag → punctuation map
func DefaultTagPunctuation() map[string]string {
	out := make(map[string]string, len(defaultTagPunctuation))
	for k, v := range defaultTagPunctuation {
		out[k] = v
	}
	return out
}

// Options configures CleanHTML
type Options struct {
	// TagPunctuation is appended inside every matching element. nil selects
	// DefaultTagPunctuation; an empty map appends nothing.
	TagPunctuation map[string]string
	// ContentSelector is a CSS selector for the container to extract
	ContentSelector string
	// KeepTableHeaders skips the table linearization step
	KeepTableHeaders bool
}

// CleanHTML flattens the container selected from doc into tidy plain text
func CleanHTML(doc Document, opts Options, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	selector := opts.ContentSelector
	if selector == "" {
		selector = DefaultContentSelector
	}

	root, ok := doc.Select(selector)
	if !ok {
		logger.Warn("content container not found", slog.String("selector", selector))
		return "", apperrors.ContainerNotFound(selector)
	}

	if !opts.KeepTableHeaders {
		LinearizeTables(root)
	}

	tagPunctuation := opts.TagPunctuation
	if tagPunctuation == nil {
		tagPunctuation = defaultTagPunctuation
	}
	AppendTagPunctuation(root, tagPunctuation)

	text := Tidy(root.Text())
	logger.Debug("html linearized",
		slog.String("selector", selector),
		slog.Int("chars", len(text)))

	return text, nil
}

// LinearizeTables writes each column header in front of the cells of its
// column and then removes the header cells. Rows shorter than the header row
// only get headers for the cells they have.
func LinearizeTables(root TagNode) {
	for _, table := range root.FindAll("table") {
		headers := table.FindAll("th")
		if len(headers) == 0 {
			continue
		}
		labels := make([]string, len(headers))
		for i, th := range headers {
			labels[i] = strings.TrimSpace(th.Text())
		}

		for _, row := range table.FindAll("tr") {
			for i, cell := range row.FindAll("td") {
				if i >= len(labels) {
					break
				}
				cell.InsertBefore(labels[i] + ": ")
			}
		}

		for _, th := range headers {
			th.Remove()
		}
	}
}

// AppendTagPunctuation appends the mapped punctuation inside every element
// whose tag is a key of tagPunctuation. Tags are visited in sorted order.
func AppendTagPunctuation(root TagNode, tagPunctuation map[string]string) {
	tags := make([]string, 0, len(tagPunctuation))
	for tag := range tagPunctuation {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		mark := tagPunctuation[tag]
		if mark == "" {
			continue
		}
		for _, node := range root.FindAll(tag) {
			node.AppendText(mark)
		}
	}
}

var (
	spaceRun             = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLines           = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	spaceBeforePunct     = regexp.MustCompile(`\s+([,.:;?!])`)
	duplicatePunctuation = regexp.MustCompile(`([,.:;?!])[,.:;?!]+`)
	urlTrailingMark      = regexp.MustCompile(`((?:https?://|www\.)\S*?)([.,])(\s|$)`)
)

// Tidy normalizes flattened markup text: space runs and blank lines are
// merged, whitespace before punctuation is removed, runs of punctuation keep
// their first mark and a trailing "." or "," is split off URLs.
func Tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRun.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	text = RemoveWhitespaceBeforePunctuation(text)
	text = RemoveDuplicatePunctuation(text)
	text = urlTrailingMark.ReplaceAllString(text, "${1} ${2}${3}")
	return strings.TrimSpace(text)
}

// RemoveWhitespaceBeforePunctuation attaches punctuation to the preceding word
func RemoveWhitespaceBeforePunctuation(text string) string {
	return spaceBeforePunct.ReplaceAllString(text, "$1")
}

// RemoveDuplicatePunctuation keeps the first mark of adjacent punctuation
func RemoveDuplicatePunctuation(text string) string {
	return duplicatePunctuation.ReplaceAllString(text, "$1")
}
