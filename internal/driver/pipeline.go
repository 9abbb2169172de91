package driver

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/ir"
	"rill/internal/lexer"
	"rill/internal/lower"
	"rill/internal/observ"
	"rill/internal/parser"
	"rill/internal/sema"
	"rill/internal/source"
	"rill/internal/symbols"
	"rill/internal/token"
	"rill/internal/trace"
)

// Options configure the per-file pipeline.
type Options struct {
	Stage            Stage
	MaxDiagnostics   int // 0 = unlimited
	WarningsAsErrors bool
	KeepTrivia       bool
	// Timer accumulates phase durations and may be shared between files.
	Timer *observ.Timer
}

// FileResult holds everything one file produced. Fields past the stage that
// was run stay zero; a cached result carries only the diagnostics.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Tokens  []token.Token
	Builder *ast.Builder
	AST     ast.FileID
	Context *symbols.Context
	Errors  []*parser.Error
	Sema    sema.Result
	IR      []ir.Instr
	Bag     *diag.Bag
	Cached  bool
}

func newBag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = math.MaxUint16
	}
	return diag.NewBag(maxDiagnostics)
}

// Run drives one loaded file through the pipeline. The tracer and the parent
// span come from ctx.
func Run(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Stage == "" {
		opts.Stage = StageLower
	}
	if int(id) >= fs.Len() {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	file := fs.Get(id)
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	res := &FileResult{Path: file.Path, FileID: id, Bag: newBag(opts.MaxDiagnostics)}
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	phase := func(name string, fn func(sp *trace.Span)) {
		sp := trace.Begin(tracer, trace.ScopePass, name, parent)
		start := time.Now()
		fn(sp)
		if opts.Timer != nil {
			opts.Timer.Add(name, time.Since(start))
		}
		sp.End("")
	}

	phase("lex", func(sp *trace.Span) {
		res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: rep, KeepTrivia: opts.KeepTrivia})
		sp.WithExtra("tokens", strconv.Itoa(len(res.Tokens)))
	})

	if opts.Stage.Reaches(StageParse) {
		phase("parse", func(sp *trace.Span) {
			n := uint(len(res.Tokens))
			res.Builder = ast.NewBuilder(ast.Hints{Items: n/16 + 1, Stmts: n/8 + 1, Exprs: n/2 + 1}, nil)
			res.Context = symbols.NewContext()
			var maxErrors uint
			if opts.MaxDiagnostics > 0 {
				maxErrors = uint(opts.MaxDiagnostics)
			}
			pres := parser.Parse(res.Tokens, res.Context, res.Builder, parser.Options{
				File:        file.Path,
				Reporter:    rep,
				MaxErrors:   maxErrors,
				Tracer:      tracer,
				TraceParent: sp.ID(),
			})
			res.AST = pres.File
			res.Errors = pres.Errors
			sp.WithExtra("items", strconv.Itoa(len(res.Builder.Files.Get(res.AST).Items)))
		})
	}

	if opts.Stage.Reaches(StageSema) {
		phase("sema", func(sp *trace.Span) {
			res.Sema = sema.New(res.Builder, res.Context, sema.Options{
				Reporter:    rep,
				Tracer:      tracer,
				TraceParent: sp.ID(),
			}).Analyze(res.AST)
			sp.WithExtra("failed", strconv.Itoa(len(res.Sema.Failed)))
		})
		if err := res.Context.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
	}

	if opts.Stage.Reaches(StageLower) {
		phase("lower", func(sp *trace.Span) {
			res.IR = slices.Collect(lower.New(res.Builder, nil).File(res.Sema.Items))
			sp.WithExtra("instrs", strconv.Itoa(len(res.IR)))
		})
	}

	finishBag(res.Bag, opts)
	return res, nil
}

func finishBag(bag *diag.Bag, opts Options) {
	if opts.WarningsAsErrors {
		bag.PromoteWarnings()
	}
	bag.Sort()
}

// RunFile loads path into a fresh FileSet and runs the pipeline on it.
func RunFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	res, err := Run(ctx, fs, id, opts)
	if err != nil {
		return fs, nil, err
	}
	return fs, res, nil
}

// RunSource runs the pipeline on in-memory content.
func RunSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	res, err := Run(ctx, fs, id, opts)
	return fs, res, err
}
