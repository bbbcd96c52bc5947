package render

import (
	"bytes"
	"context"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/observability"
)

// Engine renders DOT text through an embedded Graphviz. The zero value
// is ready to use; instances are stateless and safe for concurrent use.
type Engine struct{}

// NewEngine creates a rendering engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render renders one DOT document into the given format.
func (e *Engine) Render(ctx context.Context, dotText string, format Format) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, string(format))
	out, err := e.render(ctx, dotText, format)
	observability.Render().OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	return out, err
}

func (e *Engine) render(ctx context.Context, dotText string, format Format) ([]byte, error) {
	if format == DOT {
		return []byte(dotText), nil
	}
	gvFormat, err := format.graphviz()
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dotText))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}

	if format == SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var _ Renderer = (*Engine)(nil)

// Validate parses dotText and reports whether it is well-formed DOT. It
// never lays out or renders anything.
func Validate(dotText string) error {
	g, err := graphviz.ParseBytes([]byte(dotText))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	return g.Close()
}
