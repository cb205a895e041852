package xmldoc

import (
	"strings"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Element(t *testing.T) {
	assert := assert2.New(t)
	p := NewPrinter()

	t.Run("example-item", func(t *testing.T) {
		doc := mustParse(t, `<root><example><item id="1"/></example></root>`)
		out, err := p.Element(ExampleContent(doc))
		assert.NoError(err)
		assert.Equal(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><item id="1"/>`, out)
	})

	t.Run("indents-nested-elements", func(t *testing.T) {
		doc := mustParse(t, "<root>\n    <example>\n      <payload>\n            <n>7</n>\n</payload>\n    </example>\n</root>")
		out, err := p.Element(ExampleContent(doc))
		assert.NoError(err)
		assert.Equal(Declaration+"<payload>\n  <n>7</n>\n</payload>", out)
	})

	t.Run("carries-namespaces", func(t *testing.T) {
		doc := mustParse(t, `<r:root xmlns:r="urn:r" xmlns="urn:d"><r:example><item/></r:example></r:root>`)
		out, err := p.Element(ExampleContent(doc))
		assert.NoError(err)
		assert.Equal(Declaration+`<item xmlns:r="urn:r" xmlns="urn:d"/>`, out)
	})

	t.Run("own-namespace-wins", func(t *testing.T) {
		doc := mustParse(t, `<root xmlns="urn:outer"><example><item xmlns="urn:inner"/></example></root>`)
		out, err := p.Element(ExampleContent(doc))
		assert.NoError(err)
		assert.Equal(Declaration+`<item xmlns="urn:inner"/>`, out)
	})
}

func TestPrinter_Document(t *testing.T) {
	assert := assert2.New(t)
	p := NewPrinter()

	t.Run("single-element", func(t *testing.T) {
		out, err := p.Document(mustParse(t, `<ok/>`))
		assert.NoError(err)
		assert.Equal(Declaration+`<ok/>`, out)
	})

	t.Run("replaces-declaration", func(t *testing.T) {
		out, err := p.Document(mustParse(t, "<?xml version=\"1.0\"?>\n<a>\n<b/>\n</a>\n"))
		assert.NoError(err)
		assert.Equal(Declaration+"<a>\n  <b/>\n</a>", out)
	})

	t.Run("deep-nesting", func(t *testing.T) {
		out, err := p.Document(mustParse(t, `<a><b><c>x</c><d/></b></a>`))
		assert.NoError(err)
		assert.Equal(Declaration+"<a>\n  <b>\n    <c>x</c>\n    <d/>\n  </b>\n</a>", out)
	})

	t.Run("mixed-content-is-kept", func(t *testing.T) {
		out, err := p.Document(mustParse(t, `<p>Hello <b>big</b> world</p>`))
		assert.NoError(err)
		assert.Equal(Declaration+`<p>Hello <b>big</b> world</p>`, out)
	})

	t.Run("top-level-comment", func(t *testing.T) {
		out, err := p.Document(mustParse(t, "<!-- generated -->\n<a><b/></a>"))
		assert.NoError(err)
		assert.Equal(Declaration+"<!-- generated -->\n<a>\n  <b/>\n</a>", out)
	})

	t.Run("does-not-modify-source-layout-twice", func(t *testing.T) {
		doc := mustParse(t, `<a><b/></a>`)
		first, err := p.Document(doc)
		require.NoError(t, err)
		second, err := p.Document(doc)
		require.NoError(t, err)
		assert.Equal(first, second)
	})
}

func TestPrinter_Idempotent(t *testing.T) {
	assert := assert2.New(t)
	p := NewPrinter()

	docs := []string{
		`<ok/>`,
		`<root><example><item id="1"/></example></root>`,
		"<a>\n\t<b>\n\t\t<c>x</c>\n\t</b>\n\t<d attr=\"v\">  padded  </d>\n</a>",
		`<p>Hello <b>big</b> <i>small</i> world</p>`,
		`<list xmlns="urn:x"><entry><k>1</k><v><![CDATA[<raw>]]></v></entry><entry/></list>`,
		"<!-- c --><a><!-- inner --><b/></a>",
	}

	for _, src := range docs {
		first, err := p.Document(mustParse(t, src))
		require.NoError(t, err, src)

		second, err := p.Document(mustParse(t, first))
		require.NoError(t, err, src)

		assert.Equal(first, second, src)
		assert.True(strings.HasPrefix(first, Declaration))
	}
}
