package preprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cubahno/restdoc/internal/files"
	"github.com/cubahno/restdoc/pkg/taglet"
)

// Stdout as output directory writes expanded files to the processor output instead.
const Stdout = "-"

var (
	ErrSameFile = errors.New("output would overwrite the source")
)

// RestRenderer renders REST example tags.
type RestRenderer interface {
	Name() string
	Render(ctx context.Context, tag taglet.Tag) (string, bool)
}

// ValueRenderer renders constant value tags.
type ValueRenderer interface {
	Name() string
	Render(tag taglet.Tag) (string, bool)
}

// Stats counts the work done by Run.
type Stats struct {
	Files  int
	Copied int
	Tags   int
}

// Processor replaces inline tags with their rendered HTML.
// Tags are rendered one at a time, in file order.
type Processor struct {
	rest       RestRenderer
	value      ValueRenderer
	extensions []string
	out        io.Writer
}

// Option configures a Processor.
type Option func(*Processor)

// WithExtensions sets the file types that are expanded. Other files are copied as they are.
func WithExtensions(extensions ...string) Option {
	return func(p *Processor) {
		p.extensions = extensions
	}
}

// WithOutput sets where expanded files go when the output directory is Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Processor) {
		p.out = w
	}
}

// NewProcessor creates a processor rendering tags with rest and value.
func NewProcessor(rest RestRenderer, value ValueRenderer, opts ...Option) *Processor {
	p := &Processor{
		rest:       rest,
		value:      value,
		extensions: []string{".go", ".html", ".htm", ".md", ".txt"},
		out:        os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Expand returns content with every tag replaced by its rendered HTML.
// A tag that renders nothing is removed.
func (p *Processor) Expand(ctx context.Context, file string, content []byte) ([]byte, int, error) {
	occurrences := Scan(file, content, p.rest.Name(), p.value.Name())
	if len(occurrences) == 0 {
		return content, 0, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(content))

	last := 0
	for _, occ := range occurrences {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		buf.Write(content[last:occ.Start])
		last = occ.End

		var (
			html string
			ok   bool
		)
		switch occ.TagName {
		case p.rest.Name():
			html, ok = p.rest.Render(ctx, occ)
		default:
			html, ok = p.value.Render(occ)
		}

		if ok {
			buf.WriteString(html)
		}
		slog.Debug("Tag rendered", "tag", occ.TagName, "position", occ.Pos.String(), "empty", !ok)
	}
	buf.Write(content[last:])

	return buf.Bytes(), len(occurrences), nil
}

// Run expands sources into outDir, mirroring their relative paths.
// Files without an expanded extension are copied, or skipped when writing to Stdout.
func (p *Processor) Run(ctx context.Context, sources []files.Source, outDir string) (Stats, error) {
	var stats Stats

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		dest := ""
		if outDir != Stdout {
			dest = filepath.Join(outDir, src.Rel)
			if same, err := samePath(src.Path(), dest); err != nil {
				return stats, err
			} else if same {
				return stats, fmt.Errorf("%w: %s", ErrSameFile, dest)
			}
		}

		if !files.HasExtension(src.Rel, p.extensions) {
			if dest == "" {
				continue
			}
			if err := files.CopyFile(src.Path(), dest); err != nil {
				return stats, err
			}
			stats.Copied++
			continue
		}

		n, err := p.renderFile(ctx, src, dest)
		if err != nil {
			return stats, err
		}
		stats.Files++
		stats.Tags += n
	}

	slog.Info("Rendering finished", "files", stats.Files, "copied", stats.Copied, "tags", stats.Tags)
	return stats, nil
}

func (p *Processor) renderFile(ctx context.Context, src files.Source, dest string) (int, error) {
	content, err := os.ReadFile(src.Path())
	if err != nil {
		return 0, err
	}

	expanded, n, err := p.Expand(ctx, src.Path(), content)
	if err != nil {
		return 0, err
	}

	if dest == "" {
		_, err = p.out.Write(expanded)
		return n, err
	}

	if err := files.SaveFile(dest, expanded); err != nil {
		return 0, err
	}
	slog.Info("File rendered", "source", src.Path(), "dest", dest, "tags", n)

	return n, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}
