package sema

import (
	"strings"
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/parser"
	"rill/internal/source"
	"rill/internal/symbols"
)

type analyzed struct {
	fs      *source.FileSet
	builder *ast.Builder
	ctx     *symbols.Context
	bag     *diag.Bag
	result  Result
}

func analyzeSource(t *testing.T, input string) analyzed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rl", []byte(input))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	ctx := symbols.NewContext()
	pres := parser.ParseFile(fs.Get(id), ctx, builder, parser.Options{Reporter: rep})
	if len(pres.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", pres.Errors)
	}
	res := New(builder, ctx, Options{Reporter: rep}).Analyze(pres.File)
	return analyzed{fs: fs, builder: builder, ctx: ctx, bag: bag, result: res}
}

func (a analyzed) golden() string {
	return diag.FormatGoldenDiagnostics(a.bag.Items(), a.fs, false)
}

func (a analyzed) names(ids []ast.ItemID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.builder.Name(a.builder.Items.Name(id)))
	}
	return out
}

func TestAnalyzeWellFormed(t *testing.T) {
	src := `fn main() -> i32 { ret add(1, 2) * 3; }
fn add(a: i32, b: i32) -> i32 { ret a + b; }
fn id(p: Point) -> Point { ret p; }
fn decl(x: i32) -> i32;
fn noop() {}
`
	a := analyzeSource(t, src)
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", a.golden())
	}
	if got := strings.Join(a.names(a.result.Items), ","); got != "main,add,id,decl,noop" {
		t.Fatalf("items %s", got)
	}
	if len(a.result.Failed) != 0 {
		t.Fatalf("unexpected failures %v", a.result.Failed)
	}
	if a.ctx.Depth() != 1 {
		t.Fatalf("scope stack not unwound: depth %d", a.ctx.Depth())
	}
	if _, ok := a.ctx.CurrentReturn(); ok {
		t.Fatalf("current return should be cleared")
	}
	if err := a.ctx.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unresolved identifier",
			src:  "fn f() -> i32 { ret y; }",
			want: "error SEM3005 test.rl:1:21 unresolved symbol 'y'",
		},
		{
			name: "unknown function",
			src:  "fn f() -> i32 { ret g(); }",
			want: "error SEM3005 test.rl:1:21 unknown function 'g'",
		},
		{
			name: "arity",
			src:  "fn g(a: i32) -> i32 { ret a; }\nfn f() -> i32 { ret g(1, 2); }",
			want: "error SEM3011 test.rl:2:21 function 'g' expects 1 argument(s), got 2",
		},
		{
			name: "argument type",
			src:  "fn g(a: i32) -> i32 { ret a; }\nfn f(p: Point) -> i32 { ret g(p); }",
			want: "error SEM3010 test.rl:2:31 argument 1 of 'g': expected i32, got Point",
		},
		{
			name: "binary operand",
			src:  "fn f(p: Point) -> i32 { ret p + 1; }",
			want: "error SEM3010 test.rl:1:29 operator '+' requires i32 operands, got Point and i32",
		},
		{
			name: "return mismatch",
			src:  "fn f(p: Point) -> i32 { ret p; }",
			want: "error SEM3012 test.rl:1:25 return type mismatch: expected i32, got Point",
		},
		{
			name: "value in void function",
			src:  "fn f() { ret 1; }",
			want: "error SEM3012 test.rl:1:10 return type mismatch: expected void, got i32",
		},
		{
			name: "function used as value",
			src:  "fn g() -> i32 { ret 1; }\nfn f() -> i32 { ret g; }",
			want: "error SEM3005 test.rl:2:21 'g' is a function, call it as g()",
		},
		{
			name: "void call in arithmetic",
			src:  "fn v() {}\nfn f() -> i32 { ret v() + 1; }",
			want: "error SEM3010 test.rl:2:21 operator '+' requires i32 operands, got void and i32",
		},
		{
			name: "missing return is a warning",
			src:  "fn f() -> i32 {}",
			want: "warning SEM3013 test.rl:1:4 function 'f' returns i32 but has no 'ret' statement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyzeSource(t, tt.src)
			if got := a.golden(); got != tt.want {
				t.Fatalf("diagnostics:\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestFailureIsolation(t *testing.T) {
	src := "fn a() -> i32 { ret 1; }\nfn b() -> i32 { ret nope; ret alsoNope; }\nfn c() -> i32 { ret a(); }\n"
	a := analyzeSource(t, src)
	if a.bag.Len() != 1 {
		t.Fatalf("only the first failure of b is reported:\n%s", a.golden())
	}
	if got := strings.Join(a.names(a.result.Items), ","); got != "a,c" {
		t.Fatalf("items %s", got)
	}
	if got := strings.Join(a.names(a.result.Failed), ","); got != "b" {
		t.Fatalf("failed %s", got)
	}
}

func TestDuplicateFunction(t *testing.T) {
	a := analyzeSource(t, "fn f() -> i32 { ret 1; }\nfn f(x: i32) -> i32 { ret x; }\nfn g() -> i32 { ret f(); }")
	items := a.bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaDuplicateSymbol {
		t.Fatalf("unexpected diagnostics:\n%s", a.golden())
	}
	if len(items[0].Notes) != 1 {
		t.Fatalf("want a note at the first declaration")
	}
	if got := strings.Join(a.names(a.result.Items), ","); got != "f,g" {
		t.Fatalf("items %s", got)
	}
	if len(a.result.Failed) != 1 {
		t.Fatalf("failed %v", a.result.Failed)
	}
}

func TestForwardCall(t *testing.T) {
	a := analyzeSource(t, "fn f() -> i32 { ret later(2); }\nfn later(n: i32) -> i32 { ret n * 2; }")
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", a.golden())
	}
}

func TestParamShadowsFunction(t *testing.T) {
	a := analyzeSource(t, "fn f() -> i32 { ret 1; }\nfn g(f: i32) -> i32 { ret f + 1; }")
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", a.golden())
	}
}

func TestExprTypesRecorded(t *testing.T) {
	a := analyzeSource(t, "fn id(p: Point) -> Point { ret p; }\nfn n() -> i32 { ret 1 + 2; }")
	var points, ints int
	for _, ty := range a.result.ExprTypes {
		switch {
		case ty.IsI32():
			ints++
		case ty.Name == "Point":
			points++
		}
	}
	if points != 1 || ints != 3 {
		t.Fatalf("points=%d ints=%d", points, ints)
	}
}
