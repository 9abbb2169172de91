package parser

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/symbols"
	"rill/internal/token"
	"rill/internal/trace"
)

type Options struct {
	// File labels errors; usually the path as given on the command line.
	File      string
	Reporter  diag.Reporter
	MaxErrors uint // 0 = unlimited forwarding
	Tracer    trace.Tracer
	// TraceParent nests per-function node spans under the caller's span.
	TraceParent uint64
}

// Result of parsing one token stream. Errors holds every function-level
// failure in source order, including those past MaxErrors.
type Result struct {
	File   ast.FileID
	Errors []*Error
}

// Parser: состояние парсера на один поток токенов
type Parser struct {
	toks     []token.Token
	pos      int
	ctx      *symbols.Context
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	errors   []*Error
	reported uint
	lastSpan source.Span
}

// Parse builds a file from tokens. It never fails as a whole: a broken
// top-level declaration is reported, dropped and parsing resumes at the next
// `fn`. ctx receives the parameter scope of every function while it is parsed.
func Parse(tokens []token.Token, ctx *symbols.Context, builder *ast.Builder, opts Options) Result {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	p := Parser{
		toks:   tokens,
		ctx:    ctx,
		arenas: builder,
		opts:   opts,
	}
	p.file = builder.NewFile(p.streamSpan())
	p.parseItems()
	return Result{File: p.file, Errors: p.errors}
}

// ParseFile lexes file and parses the resulting tokens.
func ParseFile(file *source.File, ctx *symbols.Context, builder *ast.Builder, opts Options) Result {
	if opts.File == "" {
		opts.File = file.Path
	}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(toks, ctx, builder, opts)
}

func (p *Parser) streamSpan() source.Span {
	if len(p.toks) == 0 {
		return source.Span{}
	}
	return p.toks[0].Span.Cover(p.toks[len(p.toks)-1].Span)
}

// parseItems: основной цикл верхнего уровня.
func (p *Parser) parseItems() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == token.EOF {
			return
		}
		if tok.Kind != token.KwFn {
			err := p.errorAt(ErrUnexpectedToken, tok, "", "unsupported top-level construct")
			err.code = diag.SynUnexpectedTopLevel
			p.record(err)
			p.pos++
			p.resyncTop()
			continue
		}
		item, err := p.parseFnItem()
		if err != nil {
			p.record(err)
			p.resyncTop()
			continue
		}
		if !p.arenas.PushItem(p.file, item) {
			// duplicates are the analyzer's business; the item is still kept
			trace.Point(p.opts.Tracer, trace.ScopeNode, "duplicate", p.itemName(item))
		}
	}
}

// resyncTop skips to the next `fn` or the end of the stream.
func (p *Parser) resyncTop() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == token.EOF || tok.Kind == token.KwFn {
			return
		}
		p.pos++
	}
}

func (p *Parser) record(err *Error) {
	p.errors = append(p.errors, err)
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors > 0 && p.reported >= p.opts.MaxErrors {
		return
	}
	p.reported++
	p.opts.Reporter.Report(err.Code(), diag.SevError, err.Span, err.Summary(), nil, err.Fixes)
}

func (p *Parser) itemName(item ast.ItemID) string {
	return p.arenas.Name(p.arenas.Items.Name(item))
}
