// Package xmldoc extracts example content from XML documents and pretty-prints it.
package xmldoc

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ExampleElement is the local name of the element that wraps example content.
const ExampleElement = "example"

var (
	ErrXML = errors.New("xml error")
)

// Parse reads an XML document from r.
// Documents declaring a non UTF-8 encoding are decoded to UTF-8.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrXML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrXML)
	}

	return doc, nil
}

// ExampleContent returns the first element child of the first <example> element
// that is a direct child of the document root. Deeper <example> elements are ignored.
// It returns nil when there is no such element.
func ExampleContent(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}

	var example *etree.Element
	for _, el := range elementsByName(&doc.Element, ExampleElement) {
		if el.Parent() == root {
			example = el
			break
		}
	}
	if example == nil {
		return nil
	}

	for _, child := range example.Child {
		if el, ok := child.(*etree.Element); ok {
			return el
		}
	}
	return nil
}

// elementsByName collects all elements below parent with the given local name, in document order.
func elementsByName(parent *etree.Element, name string) []*etree.Element {
	var res []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == name {
			res = append(res, child)
		}
		res = append(res, elementsByName(child, name)...)
	}
	return res
}

// PurgeWhitespace removes every text node of doc that consists of XML whitespace only.
func PurgeWhitespace(doc *etree.Document) {
	purgeWhitespace(&doc.Element)
}

func purgeWhitespace(el *etree.Element) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		switch child := el.Child[i].(type) {
		case *etree.CharData:
			if child.IsWhitespace() {
				el.RemoveChildAt(i)
			}
		case *etree.Element:
			purgeWhitespace(child)
		}
	}
}

// top returns the outermost ancestor of el, which is the document itself for attached elements.
func top(el *etree.Element) *etree.Element {
	for el.Parent() != nil {
		el = el.Parent()
	}
	return el
}
