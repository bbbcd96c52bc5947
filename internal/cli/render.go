package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/observability"
	"github.com/listviz/listviz/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	formats []render.Format
	output  string // output directory, empty means next to each input
	jobs    int
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		opts       renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [file.dot ...]",
		Short: "Render DOT files to SVG or PNG",
		Long: `Render DOT files to SVG or PNG through the embedded Graphviz.

Files render concurrently, bounded by --jobs. Artifacts land next to their
inputs unless --output names a directory. Rendered artifacts are cached by
content, so re-rendering an unchanged file is instant; --no-cache bypasses
the cache for one run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr, c.Config.Render.Format)
			if err != nil {
				return err
			}
			opts.formats = formats
			if !cmd.Flags().Changed("jobs") {
				opts.jobs = c.Config.Render.Jobs
			}
			return c.runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: next to each input)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "concurrent renders (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// parseFormats parses a comma-separated format flag, falling back to the
// configured default when empty.
func parseFormats(s, fallback string) ([]render.Format, error) {
	if s == "" {
		s = fallback
	}
	var formats []render.Format
	for _, raw := range strings.Split(s, ",") {
		f, err := render.ParseFormat(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// cacheCounter tallies artifact cache hits for the summary line.
type cacheCounter struct {
	observability.NoopCacheHooks
	hits atomic.Int64
}

func (cc *cacheCounter) OnCacheHit(context.Context, string) {
	cc.hits.Add(1)
}

func (c *CLI) runRender(ctx context.Context, inputs []string, opts *renderOpts) error {
	jobs := make([]render.Job, 0, len(inputs))
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
		}
		jobs = append(jobs, render.Job{Name: input, DOT: string(data), Formats: opts.formats})
	}

	if opts.output != "" {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return err
		}
	}

	renderer, closeCache := c.newRenderer(ctx, opts.noCache)
	defer closeCache()

	counter := &cacheCounter{}
	observability.SetCacheHooks(counter)
	defer observability.Reset()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d file(s)...", len(inputs)))
	spinner.Start()

	artifacts, err := render.Batch(ctx, renderer, jobs, opts.jobs)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, a := range artifacts {
		path := artifactPath(a.Name, opts.output, a.Format)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		c.Logger.Debugf("Wrote %s: %d bytes", path, len(a.Data))
		printFile(path)
	}

	printRenderStats(len(artifacts), int(counter.hits.Load()))
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(artifacts)))
	return nil
}

// artifactPath computes where one artifact lands: the input's directory,
// or dir when set, with the format extension replacing the input's.
func artifactPath(input, dir string, format render.Format) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	target := filepath.Dir(input)
	if dir != "" {
		target = dir
	}
	return filepath.Join(target, base+format.Ext())
}
