package driver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"deob/internal/observ"
	"deob/internal/pipeline"
	"deob/internal/project"
	"deob/internal/trace"
)

// Options configures normalize and query runs.
type Options struct {
	MaxDiagnostics int
	Normalize      project.NormalizeConfig
	Format         project.FormatConfig
	Query          project.QueryConfig

	// Jobs bounds the number of files processed at once; <= 0 means
	// GOMAXPROCS.
	Jobs int
	// OutDir receives the *.anf.js files of a directory run, mirroring the
	// input layout. Empty writes them next to their inputs.
	OutDir string

	Cache    *DiskCache // nil disables caching
	Timer    *observ.Timer
	Progress pipeline.ProgressSink
}

// runner carries the per-run state shared by the files of one command.
type runner struct {
	opts    Options
	namer   *namer
	timings pipeline.Timings
	lines   atomic.Int64
	files   atomic.Int64
}

func newRunner(opts Options) (*runner, error) {
	nm, err := newNamer(opts.Normalize)
	if err != nil {
		return nil, err
	}
	return &runner{opts: opts, namer: nm}, nil
}

func (r *runner) emit(file string, stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
	pipeline.Emit(r.opts.Progress, pipeline.Event{
		File:    file,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

// stage runs fn as one timed stage of file.
func (r *runner) stage(ctx context.Context, file string, stage pipeline.Stage, fn func(context.Context) error) error {
	r.emit(file, stage, pipeline.StatusWorking, nil, 0)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, string(stage), trace.CurrentSpan(ctx))
	start := time.Now()
	err := fn(trace.WithSpan(ctx, span))
	r.timings.Add(stage, time.Since(start))
	if err != nil {
		span.End("error")
		r.emit(file, stage, pipeline.StatusError, err, 0)
		return err
	}
	span.End("")
	return nil
}

// counted records that a file of n lines went through the pipeline.
func (r *runner) counted(n int) {
	r.files.Add(1)
	r.lines.Add(int64(n))
}

// flush moves the summed stage durations into the timer.
func (r *runner) flush() {
	if r.opts.Timer == nil {
		return
	}
	lines := int(r.lines.Load())
	note := fmt.Sprintf("%d files", r.files.Load())
	for _, st := range pipeline.Stages {
		if !r.timings.Has(st) {
			continue
		}
		perLine := 0
		switch st {
		case pipeline.StageParse, pipeline.StageNormalize, pipeline.StageQuery:
			perLine = lines
		}
		r.opts.Timer.Record(string(st), r.timings.Duration(st), perLine, note)
	}
}
