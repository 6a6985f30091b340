package markup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/linearizer"
	apperrors "github.com/alejandroruanova/text-cleaner-service/internal/pkg/errors"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Fréttir</title><style>p { color: red }</style></head>
<body>
<div class="menu"><a href="/">Forsíða</a></div>
<div class="content-text"><h1>Veður</h1><p>Rigning í dag</p><script>var x = 1;</script><ul><li>einn</li><li>tveir</li></ul><table><tr><th>Staður</th><th>Hiti</th></tr><tr><td>Reykjavík</td><td>5</td></tr><tr><td>Akureyri</td></tr></table></div>
</body>
</html>`

func TestDocument_Select(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	node, ok := doc.Select("div.content-text")
	require.True(t, ok)
	assert.Equal(t, "div", node.(*Node).Tag())
	assert.NotContains(t, node.Text(), "var x")
	assert.Contains(t, node.Text(), "Rigning í dag")

	_, ok = doc.Select("article.main")
	assert.False(t, ok)
}

func TestNode_Mutations(t *testing.T) {
	doc, err := ParseString(`<div id="c"><p>a</p><p>b</p></div>`)
	require.NoError(t, err)

	root, ok := doc.Select("#c")
	require.True(t, ok)

	paragraphs := root.FindAll("p")
	require.Len(t, paragraphs, 2)

	paragraphs[0].InsertBefore(">")
	paragraphs[0].AppendText(".")
	paragraphs[1].Remove()

	assert.Equal(t, ">a.", root.Text())

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), `<div id="c">&gt;<p>a.</p></div>`)
}

func TestCleanHTML_Page(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	text, err := linearizer.CleanHTML(doc, linearizer.Options{ContentSelector: "div.content-text"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Veður.Rigning í dag.einn.tveir.Staður: Reykjavík.Hiti: 5.Staður: Akureyri.", text)
	assert.NotContains(t, text, "Forsíða")
}

func TestCleanHTML_MissingContainer(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	_, err = linearizer.CleanHTML(doc, linearizer.Options{ContentSelector: "div.missing"}, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeContainerNotFound))
}

func TestDocument_Root(t *testing.T) {
	doc, err := ParseString("<p>halló</p>")
	require.NoError(t, err)
	assert.Equal(t, "halló", doc.Root().Text())
}
