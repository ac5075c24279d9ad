package template

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultIndent is substituted for each indentation marker unless WithIndent
// says otherwise.
const DefaultIndent = "    "

// Result is the output of a single render.
type Result struct {
	Text string

	// Leftovers lists markers that had no binding, in order of appearance.
	Leftovers []string
}

// Renderer substitutes a Context into a skeleton.
type Renderer interface {
	// Render performs one literal substitution pass over the skeleton text.
	// Values are never re-expanded. Indentation markers are replaced last.
	// Unresolved markers stay in the text and are reported in the Result;
	// a strict renderer returns ErrUnresolvedMarker instead.
	Render(s Skeleton, c *Context) (Result, error)

	// Indent returns the string substituted for one indentation level.
	Indent() string
}

// RendererOption configures a Renderer.
type RendererOption func(*renderer)

// WithIndent sets the indentation string.
func WithIndent(indent string) RendererOption {
	return func(r *renderer) { r.indent = indent }
}

// WithStrict makes unresolved markers an error.
func WithStrict(strict bool) RendererOption {
	return func(r *renderer) { r.strict = strict }
}

// WithLogger sets the logger used for unresolved marker warnings.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	indent string
	strict bool
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) Renderer {
	r := &renderer{
		indent: DefaultIndent,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *renderer) Indent() string {
	return r.indent
}

func (r *renderer) Render(s Skeleton, c *Context) (Result, error) {
	text := s.Text
	if c != nil && c.Len() > 0 {
		text = strings.NewReplacer(c.pairs()...).Replace(text)
	}
	text = strings.ReplaceAll(text, Marker(IndentMarker), r.indent)

	res := Result{Text: text, Leftovers: Leftovers(text, isMarkup(s.ID))}
	if len(res.Leftovers) == 0 {
		return res, nil
	}
	if r.strict {
		return Result{}, fmt.Errorf("%w: %s in %s", ErrUnresolvedMarker, strings.Join(res.Leftovers, ", "), s.ID)
	}
	r.logger.Warn("unresolved skeleton markers left in output",
		"skeleton", s.ID,
		"origin", s.Origin.String(),
		"markers", res.Leftovers,
	)
	return res, nil
}
