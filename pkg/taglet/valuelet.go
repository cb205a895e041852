package taglet

import (
	"fmt"
	"html"
	"strings"

	"github.com/cubahno/restdoc/pkg/constant"
)

// ValueletName is the default name of the constant value tag, used as {@value <type-path>#<member>}.
const ValueletName = "value"

// ConstantLookup finds registered constants by reference.
type ConstantLookup interface {
	Lookup(path string) (constant.Constant, error)
}

// Valuelet renders constant value tags without the quotation marks
// around string literals.
type Valuelet struct {
	*options
	lookup ConstantLookup
}

// NewValuelet creates a valuelet reading constants from lookup.
func NewValuelet(lookup ConstantLookup, opts ...Option) *Valuelet {
	return &Valuelet{
		options: newOptions(ValueletName, opts),
		lookup:  lookup,
	}
}

// Name returns the tag name.
func (v *Valuelet) Name() string {
	return v.name
}

// Render returns the HTML for tag.
func (v *Valuelet) Render(tag Tag) (string, bool) {
	path := strings.TrimSpace(tag.Text())

	c, err := v.lookup.Lookup(path)
	if err != nil {
		return v.fail(tag, err)
	}

	typePath, member, _ := constant.SplitPath(path)
	return RewriteValue(DefaultValue(v.link(typePath, member), c)), true
}

// DefaultValue renders a constant as a link holding its literal, e.g. <a href="...">"health"</a>.
func DefaultValue(href string, c constant.Constant) string {
	literal := EscapeHTML(c.Literal)
	if inner, ok := quoted(c.Literal); ok {
		literal = `"` + EscapeHTML(inner) + `"`
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), literal)
}

// RewriteValue removes quotation marks right after a tag end (>") and right before a tag start ("<).
// Any other quotation mark is kept.
func RewriteValue(rendered string) string {
	rendered = strings.ReplaceAll(rendered, `>"`, ">")
	return strings.ReplaceAll(rendered, `"<`, "<")
}

// DefaultLink links to the page of the type, e.g. com.x.Svc#NAME -> com/x/Svc.html#NAME.
// Type paths that already contain slashes, such as Go import paths, are kept as they are.
func DefaultLink(typePath, member string) string {
	if !strings.Contains(typePath, "/") {
		typePath = strings.ReplaceAll(typePath, ".", "/")
	}
	return typePath + ".html#" + member
}

func quoted(s string) (string, bool) {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1], true
	}
	return "", false
}
