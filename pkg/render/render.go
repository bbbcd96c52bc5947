package render

import (
	"context"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/listviz/listviz/pkg/dot"
	"github.com/listviz/listviz/pkg/errors"
)

// Format is an output encoding for rendered graphs.
type Format string

// Supported output formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
	DOT Format = "dot"
)

// ParseFormat parses a user-supplied format name. It accepts the names
// of the Format constants, case-insensitively and with an optional
// leading dot, so both "SVG" and ".svg" work.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case SVG:
		return SVG, nil
	case PNG:
		return PNG, nil
	case DOT:
		return DOT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, or dot)", s)
}

// MIME returns the content type for HTTP responses.
func (f Format) MIME() string {
	switch f {
	case PNG:
		return "image/png"
	case DOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// graphviz maps the format onto the embedded engine's encoding.
func (f Format) graphviz() (graphviz.Format, error) {
	switch f {
	case SVG:
		return graphviz.SVG, nil
	case PNG:
		return graphviz.PNG, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "format %q has no graphviz encoding", f)
}

// Renderer renders DOT text into an artifact.
type Renderer interface {
	Render(ctx context.Context, dotText string, format Format) ([]byte, error)
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(ctx context.Context, dotText string, format Format) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, dotText string, format Format) ([]byte, error) {
	return f(ctx, dotText, format)
}

// Graph serializes g and renders it in one step.
func Graph(ctx context.Context, r Renderer, g *dot.Graph, format Format) ([]byte, error) {
	return r.Render(ctx, g.String(), format)
}
