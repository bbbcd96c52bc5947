// Package render turns DOT graph descriptions into image artifacts.
//
// # Overview
//
// This package contains the rendering pipeline between graph construction
// and output. It provides:
//
//   - An embedded Graphviz engine (no external binaries required)
//   - Concurrent batch rendering with bounded parallelism
//   - Transparent artifact caching keyed by DOT content
//
// # Rendering
//
// [Engine] renders through [github.com/goccy/go-graphviz], which runs
// Graphviz in-process:
//
//	engine := render.NewEngine()
//	svg, err := engine.Render(ctx, g.String(), render.SVG)
//
// [Format] selects the output encoding. [DOT] is a passthrough that
// returns the source text unchanged, so callers can treat "write the
// .dot file" as just another format.
//
// # Caching
//
// [Cached] wraps any [Renderer] with a [cache.Cache]. Artifacts are
// keyed by the SHA-256 of the DOT text plus the format, so identical
// graphs render once per format regardless of where they came from:
//
//	cached := render.NewCached(engine, fileCache, nil, 24*time.Hour)
//	svg, err := cached.Render(ctx, dotText, render.SVG)
//
// # Batch Rendering
//
// [Batch] fans a set of jobs out over a bounded worker pool and collects
// the artifacts. The first failure cancels outstanding work.
package render
