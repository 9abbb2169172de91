package sema

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/symbols"
	"rill/internal/trace"
	"rill/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter    diag.Reporter
	Tracer      trace.Tracer
	TraceParent uint64
}

// Result stores what later phases need from the analysis.
type Result struct {
	// Items are the declarations that passed, in source order.
	Items []ast.ItemID
	// Failed are the declarations excluded after their first error.
	Failed    []ast.ItemID
	ExprTypes map[ast.ExprID]types.Type
}

// Analyzer walks the top-level items of a file and dispatches to the
// per-kind check. The context is owned by the caller.
type Analyzer struct {
	builder  *ast.Builder
	ctx      *symbols.Context
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	result   *Result
}

func New(builder *ast.Builder, ctx *symbols.Context, opts Options) *Analyzer {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Analyzer{
		builder:  builder,
		ctx:      ctx,
		reporter: opts.Reporter,
		tracer:   opts.Tracer,
		parent:   opts.TraceParent,
	}
}

// Analyze checks every top-level item of file.
func (a *Analyzer) Analyze(file ast.FileID) Result {
	res := Result{ExprTypes: make(map[ast.ExprID]types.Type)}
	a.result = &res
	defer func() { a.result = nil }()

	f := a.builder.Files.Get(file)
	if f == nil {
		return res
	}

	declared := a.declareItems(f)
	for _, id := range f.Items {
		if !declared[id] {
			res.Failed = append(res.Failed, id)
			continue
		}
		if a.checkItem(id) {
			res.Items = append(res.Items, id)
		} else {
			res.Failed = append(res.Failed, id)
		}
	}
	return res
}

// declareItems registers every function signature up front so calls may
// refer to functions declared later in the file. Duplicate names are reported
// and left undeclared.
func (a *Analyzer) declareItems(f *ast.File) map[ast.ItemID]bool {
	declared := make(map[ast.ItemID]bool, len(f.Items))
	for _, id := range f.Items {
		item := a.builder.Items.Get(id)
		switch item.Kind {
		case ast.ItemFn:
			fn, _ := a.builder.Items.Fn(id)
			name := a.builder.Name(fn.Name)
			if first, ok := f.Names[fn.Name]; ok && first != id {
				prev, _ := a.builder.Items.Fn(first)
				diag.ReportError(a.reporter, diag.SemaDuplicateSymbol, fn.NameSpan, "duplicate function '"+name+"'").
					WithNote(prev.NameSpan, "previous declaration here").
					Emit()
				continue
			}
			a.ctx.DeclareFunction(name, a.signature(fn))
			a.ctx.Declare(name, symbols.SymbolFunction, a.builder.Types.Resolve(fn.ReturnType), fn.NameSpan)
			declared[id] = true
		default:
			panic("sema: unknown item kind " + item.Kind.String())
		}
	}
	return declared
}

func (a *Analyzer) signature(fn *ast.FnItem) types.Signature {
	sig := types.Signature{Result: a.builder.Types.Resolve(fn.ReturnType)}
	for _, pid := range a.builder.Items.GetFnParamIDs(fn) {
		sig.Params = append(sig.Params, a.builder.Types.Resolve(a.builder.Items.FnParam(pid).Type))
	}
	return sig
}
