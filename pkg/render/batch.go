package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/listviz/listviz/pkg/errors"
)

// Job names one DOT document and the formats to render it in.
type Job struct {
	Name    string
	DOT     string
	Formats []Format
}

// Artifact is one rendered output of a [Job].
type Artifact struct {
	Name   string
	Format Format
	Data   []byte
}

// Batch renders jobs concurrently with at most workers in flight; a
// non-positive workers means GOMAXPROCS. Artifacts come back in job
// order, formats in the order each job lists them. The first failure
// cancels outstanding work.
func Batch(ctx context.Context, r Renderer, jobs []Job, workers int) ([]Artifact, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	results := make([][]Artifact, len(jobs))
	for i, job := range jobs {
		eg.Go(func() error {
			artifacts := make([]Artifact, 0, len(job.Formats))
			for _, format := range job.Formats {
				data, err := r.Render(ctx, job.DOT, format)
				if err != nil {
					return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s as %s", job.Name, format)
				}
				artifacts = append(artifacts, Artifact{Name: job.Name, Format: format, Data: data})
			}
			results[i] = artifacts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Artifact, 0, len(jobs))
	for _, artifacts := range results {
		out = append(out, artifacts...)
	}
	return out, nil
}
