package linearizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

// node is a minimal in-memory tree: elements have a tag, text nodes only text
type node struct {
	tag      string
	text     string
	parent   *node
	children []*node
}

func el(tag string, children ...*node) *node {
	n := &node{tag: tag}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

func txt(s string) *node { return &node{text: s} }

func (n *node) FindAll(tag string) []TagNode {
	var out []TagNode
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.children {
			if c.tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func (n *node) InsertBefore(s string) {
	p := n.parent
	for i, c := range p.children {
		if c == n {
			t := txt(s)
			t.parent = p
			p.children = append(p.children[:i], append([]*node{t}, p.children[i:]...)...)
			return
		}
	}
}

func (n *node) AppendText(s string) {
	t := txt(s)
	t.parent = n
	n.children = append(n.children, t)
}

func (n *node) Remove() {
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

func (n *node) Text() string {
	if n.tag == "" {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

type doc struct {
	roots map[string]*node
}

func (d doc) Select(selector string) (TagNode, bool) {
	n, ok := d.roots[selector]
	return n, ok
}

func TestLinearizeTables(t *testing.T) {
	table := el("table",
		el("tr", el("th", txt("Nafn")), el("th", txt("Aldur"))),
		el("tr", el("td", txt("Jón")), el("td", txt("30"))),
		el("tr", el("td", txt("Gunna"))),
		el("tr", el("td", txt("A")), el("td", txt("B")), el("td", txt("C"))),
	)
	root := el("div", table)

	LinearizeTables(root)

	assert.Empty(t, root.FindAll("th"))
	assert.Equal(t, "Nafn: JónAldur: 30Nafn: GunnaNafn: AAldur: BC", root.Text())
}

func TestLinearizeTables_NoHeaders(t *testing.T) {
	root := el("div", el("table", el("tr", el("td", txt("x")))))
	LinearizeTables(root)
	assert.Equal(t, "x", root.Text())
}

func TestAppendTagPunctuation(t *testing.T) {
	root := el("div",
		el("h1", txt("Fyrirsögn")),
		el("p", txt("Fyrsta málsgrein")),
		el("ul", el("li", txt("einn")), el("li", txt("tveir"))),
	)

	AppendTagPunctuation(root, map[string]string{"h1": ".", "p": ".", "li": ",", "ul": ""})

	assert.Equal(t, "Fyrirsögn.Fyrsta málsgrein.einn,tveir,", root.Text())
}

func TestTidy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "blank lines merged", input: "Hello.  \n\n World.", expected: "Hello. \n World."},
		{name: "only punctuation", input: ".,\n   \n\n?   \n\n   .! :.", expected: "."},
		{name: "space before colon", input: "Trying,  is the first! :step: toward failure.", expected: "Trying, is the first!step: toward failure."},
		{name: "url trailing period", input: "Sjá www.ruv.is. Takk", expected: "Sjá www.ruv.is . Takk"},
		{name: "url at end", input: "Sjá https://ruv.is/frett,", expected: "Sjá https://ruv.is/frett ,"},
		{name: "url inner dots kept", input: "https://a.b.is/x.html er", expected: "https://a.b.is/x.html er"},
		{name: "crlf", input: "a\r\n\r\nb", expected: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tidy(tt.input))
		})
	}
}

func TestPunctuationHelpers(t *testing.T) {
	assert.Equal(t, "hello world...", RemoveWhitespaceBeforePunctuation("hello world. . ."))
	assert.Equal(t, "I'm not superstitious, but I am a little stitious! ",
		RemoveWhitespaceBeforePunctuation("I'm not superstitious , but I am a little stitious ! "))
	assert.Equal(t, "!:?.,", RemoveWhitespaceBeforePunctuation(" ! : ? . ,"))

	assert.Equal(t, "hello world.", RemoveDuplicatePunctuation("hello world..."))
	assert.Equal(t, "A day without sunshine is like, you know, night.",
		RemoveDuplicatePunctuation("A day without sunshine is like, you know,. night.!?"))
	assert.Equal(t, "not quite consecutive. .", RemoveDuplicatePunctuation("not quite consecutive. ."))
}

func TestCleanHTML(t *testing.T) {
	content := el("div",
		el("h2", txt("Veður")),
		txt("\n"),
		el("p", txt("Rigning í dag ")),
		txt("\n\n\n"),
		el("table",
			el("tr", el("th", txt("Staður")), el("th", txt("Hiti"))),
			el("tr", el("td", txt("Reykjavík")), el("td", txt("5"))),
		),
	)
	d := doc{roots: map[string]*node{"div.content-text": content}}

	out, err := CleanHTML(d, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Veður.\nRigning í dag.Staður: Reykjavík.Hiti: 5.", out)
}

func TestCleanHTML_ContainerNotFound(t *testing.T) {
	_, err := CleanHTML(doc{}, Options{ContentSelector: "article"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeContainerNotFound))
}

func TestDefaultTagPunctuation_IsCopy(t *testing.T) {
	m := DefaultTagPunctuation()
	m["p"] = "!"
	assert.Equal(t, ".", DefaultTagPunctuation()["p"])
}
