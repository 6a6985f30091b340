// Package markup parses HTML, XHTML and EPUB chapter markup into a tree the
// linearizer can walk and modify.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/linearizer"
)

// skipText lists elements whose text is never spoken
var skipText = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"noscript": true,
	"template": true,
}

// Document is a parsed page
type Document struct {
	doc *goquery.Document
}

// Parse reads markup from r
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses markup held in memory
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Select returns the first element matching the CSS selector
func (d *Document) Select(selector string) (linearizer.TagNode, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Node{n: sel.Get(0)}, true
}

// Root returns the body element, or the document node when there is none
func (d *Document) Root() linearizer.TagNode {
	if body := d.doc.Find("body").First(); body.Length() > 0 {
		return &Node{n: body.Get(0)}
	}
	return &Node{n: d.doc.Get(0)}
}

// Render writes the current tree back out as HTML
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc.Get(0))
}

// Node wraps an element of the parsed tree
type Node struct {
	n *html.Node
}

// FindAll returns descendant elements named tag in document order
func (e *Node) FindAll(tag string) []linearizer.TagNode {
	tag = strings.ToLower(tag)
	var out []linearizer.TagNode
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, &Node{n: c})
			}
			walk(c)
		}
	}
	walk(e.n)
	return out
}

// InsertBefore inserts a text node directly before the element
func (e *Node) InsertBefore(text string) {
	if e.n.Parent == nil {
		return
	}
	e.n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, e.n)
}

// AppendText adds a text node as the element's last child
func (e *Node) AppendText(text string) {
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Remove detaches the element from the tree
func (e *Node) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

// Text concatenates the subtree's text, skipping scripts, styles and the head
func (e *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipText[n.Data] {
				return
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// Tag returns the element name
func (e *Node) Tag() string {
	return e.n.Data
}
