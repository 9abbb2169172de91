package diagfmt

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/parser"
	"rill/internal/source"
	"rill/internal/symbols"
)

func parseSource(t *testing.T, input string) (*source.FileSet, *ast.Builder, ast.FileID, *symbols.Context) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(input))
	bag := diag.NewBag(20)
	b := ast.NewBuilder(ast.Hints{}, nil)
	ctx := symbols.NewContext()
	res := parser.ParseFile(fs.Get(id), ctx, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return fs, b, res.File, ctx
}
