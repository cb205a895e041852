package xmldoc

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	assert := assert2.New(t)

	t.Run("happy-path", func(t *testing.T) {
		doc, err := Parse(strings.NewReader(`<root><a/></root>`))
		assert.NoError(err)
		assert.Equal("root", doc.Root().Tag)
	})

	t.Run("not-xml", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`not xml`))
		assert.ErrorIs(err, ErrXML)
	})

	t.Run("unclosed", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`<root><a></root>`))
		assert.ErrorIs(err, ErrXML)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse(strings.NewReader(``))
		assert.ErrorIs(err, ErrXML)
	})

	t.Run("latin1", func(t *testing.T) {
		doc, err := Parse(strings.NewReader("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xe9</a>"))
		assert.NoError(err)
		assert.Equal("café", doc.Root().Text())
	})
}

func TestExampleContent(t *testing.T) {
	assert := assert2.New(t)

	t.Run("direct-child", func(t *testing.T) {
		doc := mustParse(t, `<root><example><item id="1"/></example></root>`)
		el := ExampleContent(doc)
		require.NotNil(t, el)
		assert.Equal("item", el.Tag)
		assert.Equal("1", el.SelectAttrValue("id", ""))
	})

	t.Run("no-example", func(t *testing.T) {
		doc := mustParse(t, `<root><item/></root>`)
		assert.Nil(ExampleContent(doc))
	})

	t.Run("root-is-example", func(t *testing.T) {
		doc := mustParse(t, `<example/>`)
		assert.Nil(ExampleContent(doc))
	})

	t.Run("root-is-example-with-child", func(t *testing.T) {
		doc := mustParse(t, `<example><item/></example>`)
		assert.Nil(ExampleContent(doc))
	})

	t.Run("deeper-example-only", func(t *testing.T) {
		doc := mustParse(t, `<root><wrap><example><item/></example></wrap></root>`)
		assert.Nil(ExampleContent(doc))
	})

	t.Run("deeper-example-before-direct-child", func(t *testing.T) {
		doc := mustParse(t, `<root><wrap><example><bad/></example></wrap><example><good/></example></root>`)
		el := ExampleContent(doc)
		require.NotNil(t, el)
		assert.Equal("good", el.Tag)
	})

	t.Run("first-direct-child-wins", func(t *testing.T) {
		doc := mustParse(t, `<root><example><first/></example><example><second/></example></root>`)
		el := ExampleContent(doc)
		require.NotNil(t, el)
		assert.Equal("first", el.Tag)
	})

	t.Run("first-direct-child-without-element", func(t *testing.T) {
		doc := mustParse(t, `<root><example>text</example><example><second/></example></root>`)
		assert.Nil(ExampleContent(doc))
	})

	t.Run("skips-text-and-comments", func(t *testing.T) {
		doc := mustParse(t, "<root><example>\n  text <!-- note -->\n  <item/><other/></example></root>")
		el := ExampleContent(doc)
		require.NotNil(t, el)
		assert.Equal("item", el.Tag)
	})

	t.Run("prefixed-example", func(t *testing.T) {
		doc := mustParse(t, `<r:root xmlns:r="urn:r"><r:example><item/></r:example></r:root>`)
		el := ExampleContent(doc)
		require.NotNil(t, el)
		assert.Equal("item", el.Tag)
	})
}

func TestPurgeWhitespace(t *testing.T) {
	assert := assert2.New(t)

	doc := mustParse(t, "<root>\n  <a> </a>\n  <b>text</b>\n\t<c>  x  </c>\n</root>")
	PurgeWhitespace(doc)

	out, err := doc.WriteToString()
	assert.NoError(err)
	assert.Equal("<root><a/><b>text</b><c>  x  </c></root>", out)
}
