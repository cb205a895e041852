package xmldoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	// Declaration starts every printed document.
	Declaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

	// DefaultIndent is the number of spaces per nesting level.
	DefaultIndent = 2
)

// Printer serializes documents and elements as standalone, indented UTF-8 XML.
// Whitespace-only text is removed from the owning document before printing,
// so existing indentation never leaks into the output.
// Elements holding text keep their content exactly as parsed.
type Printer struct {
	indent int
}

// NewPrinter creates a printer with the default indentation.
func NewPrinter() *Printer {
	return &Printer{indent: DefaultIndent}
}

// Document prints the whole document.
// The original XML declaration and any DOCTYPE are replaced by Declaration.
func (p *Printer) Document(doc *etree.Document) (string, error) {
	PurgeWhitespace(doc)

	out := etree.NewDocument()
	for _, token := range doc.Child {
		switch t := token.(type) {
		case *etree.Element:
			out.AddChild(t.Copy())
		case *etree.Comment:
			out.CreateComment(t.Data)
		case *etree.ProcInst:
			if t.Target != "xml" {
				out.CreateProcInst(t.Target, t.Inst)
			}
		}
	}

	return p.write(out)
}

// Element prints el as the root of a new standalone document.
// Namespace declarations inherited from ancestors of el are carried over.
func (p *Printer) Element(el *etree.Element) (string, error) {
	purgeWhitespace(top(el))

	root := el.Copy()
	for ancestor := el.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		for _, attr := range ancestor.Attr {
			if isNamespaceDecl(attr) && root.SelectAttr(attr.FullKey()) == nil {
				root.CreateAttr(attr.FullKey(), attr.Value)
			}
		}
	}

	out := etree.NewDocument()
	out.SetRoot(root)
	return p.write(out)
}

func (p *Printer) write(doc *etree.Document) (string, error) {
	if doc.Root() == nil {
		return "", fmt.Errorf("%w: nothing to print", ErrXML)
	}

	for i := len(doc.Child) - 1; i >= 0; i-- {
		if el, ok := doc.Child[i].(*etree.Element); ok {
			p.indentElement(el, 0)
		}
		if i > 0 {
			doc.InsertChildAt(i, etree.NewText("\n"))
		}
	}

	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	body, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrXML, err)
	}

	return Declaration + body, nil
}

// indentElement puts every child of el on its own line, one level deeper than el.
// Elements with text content are left untouched.
func (p *Printer) indentElement(el *etree.Element, depth int) {
	if len(el.Child) == 0 || hasText(el) {
		return
	}

	for i := len(el.Child) - 1; i >= 0; i-- {
		if child, ok := el.Child[i].(*etree.Element); ok {
			p.indentElement(child, depth+1)
		}
		el.InsertChildAt(i, etree.NewText(p.newline(depth+1)))
	}
	el.AddChild(etree.NewText(p.newline(depth)))
}

func (p *Printer) newline(depth int) string {
	return "\n" + strings.Repeat(" ", depth*p.indent)
}

func hasText(el *etree.Element) bool {
	for _, child := range el.Child {
		if _, ok := child.(*etree.CharData); ok {
			return true
		}
	}
	return false
}

func isNamespaceDecl(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns")
}
