package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rill/internal/diag"
	"rill/internal/source"
	"rill/internal/trace"
)

// SourceExt is the extension directory mode picks up.
const SourceExt = ".rl"

// DirOptions configure a directory run.
type DirOptions struct {
	Options
	Jobs  int // <= 0 means GOMAXPROCS
	Cache *DiskCache
	Sink  ProgressSink
}

// ListSources returns every *.rl file under dir, sorted.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir runs the pipeline over every source file in dir in parallel.
// All files are loaded into one FileSet before any worker starts, so the set
// is read-only while the workers run. Results keep the ListSources order.
func DiagnoseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []*FileResult, error) {
	opts.Stage = opts.stage()
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был валидный FileID
			id = fileSet.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
		emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	// каждый воркер пишет только в свой индекс
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			if loadErrs[i] != nil {
				bag := newBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: ids[i]},
					"failed to load file: "+loadErrs[i].Error()))
				results[i] = &FileResult{Path: path, FileID: ids[i], Bag: bag}
				emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: StatusError, Err: loadErrs[i], Elapsed: time.Since(start)})
				return nil
			}

			sp := trace.Begin(tracer, trace.ScopeModule, "file", parent).WithExtra("path", path)
			defer sp.End("")

			file := fileSet.Get(ids[i])
			if res, ok := opts.cached(file); ok {
				results[i] = res
				emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: StatusCached, Elapsed: time.Since(start)})
				return nil
			}

			emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: StatusWorking})
			res, err := Run(trace.WithSpan(gctx, sp), fileSet, ids[i], opts.Options)
			if err != nil {
				emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			results[i] = res

			if opts.Cache != nil {
				payload := &DiskPayload{
					Path:        path,
					Hash:        file.Hash,
					Stage:       string(opts.stage()),
					Diagnostics: res.Bag.Items(),
				}
				if err := opts.Cache.Put(KeyFor(file, opts.Options), payload); err != nil {
					trace.Point(tracer, trace.ScopeModule, "cache_put_failed", err.Error())
				}
			}

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Sink, Event{File: path, Stage: opts.stage(), Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir runs lexing and parsing over every source file in dir.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []*FileResult, error) {
	opts.Stage = StageParse
	opts.Cache = nil
	return DiagnoseDir(ctx, dir, opts)
}

func (o DirOptions) stage() Stage {
	if o.Stage == "" {
		return StageLower
	}
	return o.Stage
}

// cached serves a diagnostics-only result from the disk cache.
func (o DirOptions) cached(file *source.File) (*FileResult, bool) {
	if o.Cache == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := o.Cache.Get(KeyFor(file, o.Options), &payload)
	if err != nil || !ok || payload.Hash != file.Hash {
		return nil, false
	}
	bag := newBag(o.MaxDiagnostics)
	for _, d := range remapDiagnostics(payload.Diagnostics, file.ID) {
		bag.Add(d)
	}
	return &FileResult{Path: file.Path, FileID: file.ID, Bag: bag, Cached: true}, true
}
