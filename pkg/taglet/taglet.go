// Package taglet renders inline documentation tags into HTML fragments.
package taglet

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cubahno/restdoc/pkg/constant"
)

// ExitStatus is the process exit status used when a tag fails under PolicyAbort.
const ExitStatus = -1

// Position is the location of a tag in its source file. Line and Column are 1-based.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Tag is one inline tag occurrence found by the host.
type Tag interface {
	Name() string
	Text() string
	Position() Position
}

// FailurePolicy decides what happens when a tag cannot be rendered.
type FailurePolicy string

const (
	// PolicyAbort logs the failure and terminates the process with ExitStatus.
	PolicyAbort FailurePolicy = "abort"

	// PolicyMarker logs the failure and renders an error marker in place of the tag.
	PolicyMarker FailurePolicy = "marker"
)

// ParseFailurePolicy maps a configuration value to a policy. Empty means PolicyAbort.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicyMarker:
		return PolicyMarker, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}

// Option configures a Restlet or a Valuelet.
type Option func(*options)

type options struct {
	name     string
	resolver constant.Resolver
	policy   FailurePolicy
	exit     func(int)
	link     func(typePath, member string) string
}

func newOptions(name string, opts []Option) *options {
	o := &options{
		name:   name,
		policy: PolicyAbort,
		exit:   os.Exit,
		link:   DefaultLink,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName overrides the tag name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithResolver sets the constant resolver used for [path] references.
func WithResolver(resolver constant.Resolver) Option {
	return func(o *options) {
		o.resolver = resolver
	}
}

// WithFailurePolicy sets the failure policy.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithExit replaces os.Exit, used by tests.
func WithExit(exit func(int)) Option {
	return func(o *options) {
		o.exit = exit
	}
}

// WithLink sets how value tags link to the documented constant.
func WithLink(link func(typePath, member string) string) Option {
	return func(o *options) {
		o.link = link
	}
}

// fail logs err with the tag location and applies the policy.
// Under PolicyAbort it does not return unless exit was replaced.
func (o *options) fail(tag Tag, err error) (string, bool) {
	pos := tag.Position()
	file := pos.File
	if abs, absErr := filepath.Abs(file); absErr == nil {
		file = abs
	}

	if o.policy == PolicyMarker {
		slog.Error("Failed to render tag", "tag", tag.Name(), "file", file, "line", pos.Line, "column", pos.Column, "error", err)
		return `<pre class="restdoc-error">` + EscapeHTML(err.Error()) + `</pre>`, true
	}

	slog.Error("Aborting on error", "tag", tag.Name(), "file", file, "line", pos.Line, "column", pos.Column, "error", err)
	o.exit(ExitStatus)
	return "", false
}
