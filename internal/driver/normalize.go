package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"deob/internal/anf"
	"deob/internal/ast"
	"deob/internal/format"
	"deob/internal/pipeline"
	"deob/internal/source"
	"deob/internal/trace"
)

type NormalizeResult struct {
	Path string
	// Parse is nil when the output came from the cache.
	Parse  *ParseResult
	Output []byte
	Temps  int
	Lines  int
	Cached bool
	// OutPath is the written file of a directory run.
	OutPath string
	Err     error
}

// NormalizeFile parses the file at path, rewrites it into A-normal form and
// prints the result.
func NormalizeFile(ctx context.Context, path string, opts Options) (*NormalizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return normalizeOne(ctx, fs, fileID, opts)
}

// NormalizeSource is NormalizeFile for text that is not on disk.
func NormalizeSource(ctx context.Context, name string, src []byte, opts Options) (*NormalizeResult, error) {
	fs := source.NewFileSet()
	return normalizeOne(ctx, fs, fs.AddVirtual(name, src), opts)
}

func normalizeOne(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*NormalizeResult, error) {
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}
	defer r.flush()
	start := time.Now()
	res, err := r.normalize(ctx, fs, fileID, fs.Get(fileID).Path)
	if res != nil {
		res.Err = err
	}
	r.finish(res, pipeline.StagePrint, time.Since(start))
	return res, err
}

// normalize runs one loaded file through parse, normalize and print,
// consulting the disk cache first. path names the file in events and
// results.
func (r *runner) normalize(ctx context.Context, fs *source.FileSet, fileID source.FileID, path string) (res *NormalizeResult, err error) {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer func() {
		switch {
		case err != nil:
			span.End("error")
		case res.Cached:
			span.End("cached")
		default:
			span.WithExtra("temps", strconv.Itoa(res.Temps)).End("")
		}
	}()

	res = &NormalizeResult{Path: path, Lines: file.LineCount()}
	r.counted(res.Lines)

	key := CacheKey(file.Hash, r.namer.fingerprint(), r.opts.Format.Fingerprint())
	if r.opts.Cache != nil {
		entry, ok, cerr := r.opts.Cache.Get(key)
		if cerr != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", span.ID(), cerr.Error())
		}
		if ok {
			res.Output, res.Temps, res.Cached = entry.Output, entry.Temps, true
			return res, nil
		}
	}

	err = r.stage(ctx, path, pipeline.StageParse, func(context.Context) error {
		var perr error
		res.Parse, perr = parseLoaded(fs, fileID, r.opts.MaxDiagnostics)
		return perr
	})
	if err != nil {
		return res, err
	}

	var out ast.FileID
	err = r.stage(ctx, path, pipeline.StageNormalize, func(context.Context) error {
		var nerr error
		out, res.Temps, nerr = r.rewrite(res.Parse)
		return nerr
	})
	if err != nil {
		return res, err
	}

	_ = r.stage(ctx, path, pipeline.StagePrint, func(context.Context) error {
		res.Output = format.Program(res.Parse.Builder, out, format.Options{
			IndentWidth: r.opts.Format.Indent,
			UseTabs:     r.opts.Format.Tabs,
		})
		return nil
	})

	if r.opts.Cache != nil {
		entry := &CacheEntry{Path: path, Output: res.Output, Temps: res.Temps, Lines: res.Lines}
		if perr := r.opts.Cache.Put(key, entry); perr != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", span.ID(), perr.Error())
		}
	}
	return res, nil
}

// finish reports the final status of a file that made it through the
// pipeline. Failures were already reported by the failing stage.
func (r *runner) finish(res *NormalizeResult, last pipeline.Stage, elapsed time.Duration) {
	if res == nil || res.Err != nil {
		return
	}
	status := pipeline.StatusDone
	if res.Cached {
		status = pipeline.StatusCached
	}
	r.emit(res.Path, last, status, nil, elapsed)
}

// rewrite normalizes the parsed program into a new file of the same
// builder. Pool exhaustion comes back as an error wrapping
// ErrNamePoolExhausted; any other panic propagates.
func (r *runner) rewrite(pr *ParseResult) (out ast.FileID, temps int, err error) {
	pool, err := r.namer.pool(identifierNames(pr.Builder, pr.FileID))
	if err != nil {
		return ast.NoFileID, 0, err
	}
	n := anf.New(pr.Builder, pool)
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if e, ok := rec.(error); ok {
			var exhausted *anf.ExhaustedError
			if errors.As(e, &exhausted) {
				err = fmt.Errorf("%s: %w after %d temporaries", pr.File.Path, ErrNamePoolExhausted, exhausted.Issued)
				return
			}
		}
		panic(rec)
	}()

	out = n.Finalize(n.Program(pr.FileID))
	if src := pr.Builder.Files.Get(pr.FileID); src != nil {
		pr.Builder.Files.Get(out).Module = src.Module
	}
	return out, n.Temps(), nil
}
