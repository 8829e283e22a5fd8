package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"deob/internal/pipeline"
	"deob/internal/source"
	"deob/internal/trace"
)

// OutputSuffix marks files written by a directory run. Inputs carrying it
// are skipped so that reruns do not normalize their own output.
const OutputSuffix = ".anf.js"

var sourceExts = []string{".js", ".mjs", ".cjs"}

// ListSourceFiles returns the sorted paths, relative to dir, of every
// script under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isSourceFile(name string) bool {
	if strings.HasSuffix(name, OutputSuffix) {
		return false
	}
	ext := filepath.Ext(name)
	for _, e := range sourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

// OutputPath is where a directory run writes the normalized form of rel.
func OutputPath(dir, outDir, rel string) string {
	base := strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputSuffix
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(dir, base)
}

// loadDir reads every file up front. FileSet is not safe for concurrent
// Add, the workers only read from it.
func (r *runner) loadDir(dir string, files []string) (*source.FileSet, []source.FileID, []error) {
	fileSet := source.NewFileSetWithBase(dir)
	ids := make([]source.FileID, len(files))
	errs := make([]error, len(files))
	for i, rel := range files {
		r.emit(rel, pipeline.StageRead, pipeline.StatusWorking, nil, 0)
		start := time.Now()
		id, err := fileSet.Load(filepath.Join(dir, rel))
		r.timings.Add(pipeline.StageRead, time.Since(start))
		if err != nil {
			errs[i] = err
			r.emit(rel, pipeline.StageRead, pipeline.StatusError, err, 0)
			continue
		}
		ids[i] = id
	}
	return fileSet, ids, errs
}

func (r *runner) jobs(n int) int {
	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(min(jobs, n), 1)
}

// NormalizeDir normalizes every script under dir in parallel and writes
// each result to OutputPath. Per-file failures are reported in the
// results; the returned error is for the run as a whole.
func NormalizeDir(ctx context.Context, dir string, opts Options) ([]NormalizeResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	defer r.flush()

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "normalize-dir", trace.CurrentSpan(ctx))
	defer span.End(dir)
	ctx = trace.WithSpan(ctx, span)

	for _, rel := range files {
		r.emit(rel, pipeline.StageRead, pipeline.StatusQueued, nil, 0)
	}
	fileSet, ids, loadErrs := r.loadDir(dir, files)
	results := make([]NormalizeResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs(len(files)))
	for i, rel := range files {
		if loadErrs[i] != nil {
			results[i] = NormalizeResult{Path: rel, Err: loadErrs[i]}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := r.normalize(gctx, fileSet, ids[i], rel)
			if err == nil {
				res.OutPath = OutputPath(dir, r.opts.OutDir, rel)
				err = r.stage(gctx, rel, pipeline.StageWrite, func(context.Context) error {
					return writeOutput(res.OutPath, res.Output)
				})
			}
			if res == nil {
				res = &NormalizeResult{Path: rel}
			}
			res.Err = err
			r.finish(res, pipeline.StageWrite, time.Since(start))
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// JoinErrors joins the per-file errors of results, nil when every file succeeded.
func JoinErrors(results []NormalizeResult) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
