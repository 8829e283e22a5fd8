package driver

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"deob/internal/ast"
	"deob/internal/pipeline"
	"deob/internal/selector"
	"deob/internal/source"
	"deob/internal/trace"
)

type QueryResult struct {
	Path    string
	Parse   *ParseResult
	Matches []ast.Selectable
	// Total counts every match, including those cut by MaxResults.
	Total int
	Stats selector.Stats
	Err   error
}

// QueryFile parses the file at path and runs q over its whole program.
func QueryFile(ctx context.Context, path string, q selector.Query, opts Options) (*QueryResult, error) {
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	defer r.flush()
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := r.query(ctx, fs, fileID, path, q)
	res.Err = err
	return res, err
}

func (r *runner) query(ctx context.Context, fs *source.FileSet, fileID source.FileID, path string, q selector.Query) (*QueryResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	res := &QueryResult{Path: path}
	r.counted(fs.Get(fileID).LineCount())

	err := r.stage(ctx, path, pipeline.StageParse, func(context.Context) error {
		var perr error
		res.Parse, perr = parseLoaded(fs, fileID, r.opts.MaxDiagnostics)
		return perr
	})
	if err != nil {
		span.End("error")
		return res, err
	}

	_ = r.stage(ctx, path, pipeline.StageQuery, func(context.Context) error {
		eng := selector.NewEngine(res.Parse.Builder, selector.Options{})
		res.Matches = eng.FindMatches(q, ast.ProgramSel(res.Parse.FileID))
		res.Stats = eng.Stats()
		return nil
	})
	res.Total = len(res.Matches)
	if limit := r.opts.Query.MaxResults; limit > 0 && len(res.Matches) > limit {
		res.Matches = res.Matches[:limit]
	}
	span.WithExtra("matches", strconv.Itoa(res.Total)).
		WithExtra("visited", strconv.Itoa(res.Stats.Visited)).
		End("")
	return res, nil
}

// QueryDir runs q over every script under dir in parallel. Results keep
// the sorted file order and carry per-file errors.
func QueryDir(ctx context.Context, dir string, q selector.Query, opts Options) ([]QueryResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	defer r.flush()

	fileSet, ids, loadErrs := r.loadDir(dir, files)
	results := make([]QueryResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs(len(files)))
	for i, rel := range files {
		if loadErrs[i] != nil {
			results[i] = QueryResult{Path: rel, Err: loadErrs[i]}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := r.query(gctx, fileSet, ids[i], rel, q)
			res.Err = err
			if err == nil {
				r.emit(rel, pipeline.StageQuery, pipeline.StatusDone, nil, time.Since(start))
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
