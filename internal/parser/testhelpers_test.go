package parser

import (
	"strconv"
	"strings"
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/lexer"
	"rill/internal/source"
	"rill/internal/symbols"
	"rill/internal/token"
)

type parsed struct {
	fs      *source.FileSet
	builder *ast.Builder
	file    ast.FileID
	ctx     *symbols.Context
	bag     *diag.Bag
	result  Result
}

func parseFull(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rl", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})

	builder := ast.NewBuilder(ast.Hints{}, nil)
	ctx := symbols.NewContext()
	res := Parse(toks, ctx, builder, Options{File: "test.rl", Reporter: rep})
	return parsed{fs: fs, builder: builder, file: res.File, ctx: ctx, bag: bag, result: res}
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	p := parseFull(t, input)
	return p.builder, p.file, p.bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil || bag.Len() == 0 {
		return "no diagnostics"
	}
	var sb strings.Builder
	for _, d := range bag.Items() {
		sb.WriteString(d.Code.ID())
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mustFn(t *testing.T, b *ast.Builder, file ast.FileID, idx int) *ast.FnItem {
	t.Helper()
	f := b.Files.Get(file)
	if idx >= len(f.Items) {
		t.Fatalf("want item %d, file has %d items", idx, len(f.Items))
	}
	fn, ok := b.Items.Fn(f.Items[idx])
	if !ok {
		t.Fatalf("item %d is not a function", idx)
	}
	return fn
}

// retExpr returns the value of the first `ret` in fn's body.
func retExpr(t *testing.T, b *ast.Builder, fn *ast.FnItem) ast.ExprID {
	t.Helper()
	block := b.Stmts.Block(fn.Body)
	if block == nil || len(block.Stmts) == 0 {
		t.Fatalf("function has no statements")
	}
	ret := b.Stmts.Return(block.Stmts[0])
	if ret == nil {
		t.Fatalf("first statement is not a return")
	}
	return ret.Value
}

// sexpr renders an expression as a parenthesised prefix form.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprNumber:
		n, _ := b.Exprs.Number(id)
		return strconv.FormatInt(n.Value, 10)
	case ast.ExprIdent:
		ident, _ := b.Exprs.Ident(id)
		return b.Name(ident.Name)
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return "(" + bin.Op.String() + " " + sexpr(b, bin.Left) + " " + sexpr(b, bin.Right) + ")"
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		parts := []string{"call", b.Name(call.Callee)}
		for _, arg := range call.Args {
			parts = append(parts, sexpr(b, arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return "?"
}

// tokens builds a synthetic stream for cursor-level tests.
func tokens(kinds ...token.Kind) []token.Token {
	out := make([]token.Token, 0, len(kinds))
	for i, k := range kinds {
		off := uint32(i)
		out = append(out, token.Token{
			Kind: k,
			Text: k.Lexeme(),
			Span: source.Span{Start: off, End: off + 1},
			Pos:  source.Position{Line: 1, Index: off + 1},
		})
	}
	return out
}
