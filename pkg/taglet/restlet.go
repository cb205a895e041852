package taglet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cubahno/restdoc/pkg/executor"
	"github.com/cubahno/restdoc/pkg/request"
)

// RestletName is the default name of the REST example tag, used as {@doc.restlet ...}.
const RestletName = "doc.restlet"

// Restlet renders REST example tags.
// The tag text describes a REST call, e.g.
//
//	service="ts" method="test" type="POST" query="par1=1&par2=2" body_uri="/ts/test2?par3=3"
//
// and is replaced by the escaped, pretty-printed XML reply inside <pre></pre>.
type Restlet struct {
	*options
	config executor.Config
}

// NewRestlet creates a restlet calling the REST service configured in cfg.
// The configuration is validated on every render, not here.
func NewRestlet(cfg executor.Config, opts ...Option) *Restlet {
	return &Restlet{
		options: newOptions(RestletName, opts),
		config:  cfg,
	}
}

// Name returns the tag name.
func (r *Restlet) Name() string {
	return r.name
}

// Render returns the HTML for tag.
// It returns false when the tag produces no output.
func (r *Restlet) Render(ctx context.Context, tag Tag) (string, bool) {
	content, err := r.Retrieve(ctx, tag.Text())
	if err != nil {
		return r.fail(tag, err)
	}

	if strings.TrimSpace(content) == "" {
		slog.Warn("Failed to retrieve content", "tag", tag.Name(), "position", tag.Position().String())
		return "", false
	}

	return "<pre>" + EscapeHTML(content) + "</pre>", true
}

// Retrieve resolves the tag text into pretty-printed XML using a fresh executor.
// Text without any attribute yields "" and no error, the caller decides whether to warn.
func (r *Restlet) Retrieve(ctx context.Context, text string) (string, error) {
	e, err := executor.New(r.config)
	if err != nil {
		return "", err
	}
	defer func() { _ = e.Close() }()

	spec, err := request.Parse(text, r.resolver)
	if err != nil {
		return "", err
	}
	if spec == nil {
		return "", nil
	}

	return e.Retrieve(ctx, spec)
}
