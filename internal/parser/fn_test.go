package parser

import (
	"testing"

	"rill/internal/ast"
	"rill/internal/types"
)

func TestParseFunctionsInOrder(t *testing.T) {
	src := "fn a() {}\nfn b(x: i32) -> i32 { ret x; }\nfn c(p: Point, q: i32);\n"
	b, file, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
	}
	f := b.Files.Get(file)
	if len(f.Items) != 3 {
		t.Fatalf("want 3 items, got %d", len(f.Items))
	}
	for i, want := range []string{"a", "b", "c"} {
		fn := mustFn(t, b, file, i)
		if got := b.Name(fn.Name); got != want {
			t.Errorf("item %d: name %q, want %q", i, got, want)
		}
		if id, ok := f.Names[fn.Name]; !ok || id != f.Items[i] {
			t.Errorf("item %d: not recorded in file names", i)
		}
	}
}

func TestParseFnSignature(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		params     []string
		paramTypes []types.Type
		ret        types.Type
		hasBody    bool
	}{
		{
			name:    "empty params",
			src:     "fn main() {}",
			ret:     types.Void(),
			hasBody: true,
		},
		{
			name:       "typed params and result",
			src:        "fn add(a: i32, b: i32) -> i32 { ret a + b; }",
			params:     []string{"a", "b"},
			paramTypes: []types.Type{types.I32(), types.I32()},
			ret:        types.I32(),
			hasBody:    true,
		},
		{
			name:       "user types",
			src:        "fn move(p: Point) -> Point;",
			params:     []string{"p"},
			paramTypes: []types.Type{types.Named("Point")},
			ret:        types.Named("Point"),
		},
		{
			name: "declaration without result",
			src:  "fn tick();",
			ret:  types.Void(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file, bag := parseSource(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
			}
			fn := mustFn(t, b, file, 0)
			ids := b.Items.GetFnParamIDs(fn)
			if len(ids) != len(tt.params) {
				t.Fatalf("want %d params, got %d", len(tt.params), len(ids))
			}
			for i, pid := range ids {
				param := b.Items.FnParam(pid)
				if got := b.Name(param.Name); got != tt.params[i] {
					t.Errorf("param %d: name %q, want %q", i, got, tt.params[i])
				}
				if got := b.Types.Resolve(param.Type); !got.Equal(tt.paramTypes[i]) {
					t.Errorf("param %d: type %s, want %s", i, got, tt.paramTypes[i])
				}
			}
			if got := b.Types.Resolve(fn.ReturnType); !got.Equal(tt.ret) {
				t.Errorf("return type %s, want %s", got, tt.ret)
			}
			if fn.HasBody() != tt.hasBody {
				t.Errorf("HasBody = %v, want %v", fn.HasBody(), tt.hasBody)
			}
		})
	}
}

func TestOmittedReturnTypeIsImplicitVoid(t *testing.T) {
	b, file, _ := parseSource(t, "fn main() {}")
	fn := mustFn(t, b, file, 0)
	te := b.Types.Get(fn.ReturnType)
	if te == nil {
		t.Fatalf("return type not allocated")
	}
	if !te.Type.IsVoid() || te.Type.Name != "void" {
		t.Fatalf("want implicit void, got %s", te.Type)
	}
	if !te.Span.Empty() {
		t.Fatalf("implicit type should have an empty span, got %s", te.Span)
	}
}

func TestBodyStatements(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() -> i32 { ret 1; ret 2; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
	}
	fn := mustFn(t, b, file, 0)
	block := b.Stmts.Block(fn.Body)
	if block == nil || len(block.Stmts) != 2 {
		t.Fatalf("want 2 statements, got %+v", block)
	}
	for i, want := range []string{"1", "2"} {
		st := b.Stmts.Get(block.Stmts[i])
		if st.Kind != ast.StmtReturn {
			t.Fatalf("stmt %d: kind %s", i, st.Kind)
		}
		if got := sexpr(b, b.Stmts.Return(block.Stmts[i]).Value); got != want {
			t.Errorf("stmt %d: value %s, want %s", i, got, want)
		}
	}
}

func TestParameterScopeIsPopped(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"ok", "fn f(a: i32, b: i32) -> i32 { ret a; }"},
		{"failure inside body", "fn f(a: i32) -> i32 { ret a }"},
		{"failure inside params", "fn f(a: i32, b) {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseFull(t, tt.src)
			if d := p.ctx.Depth(); d != 1 {
				t.Fatalf("want only the root scope after parsing, depth %d", d)
			}
			if _, ok := p.ctx.Lookup("a"); ok {
				t.Fatalf("parameter visible after function was parsed")
			}
		})
	}
}

func TestDuplicateParameter(t *testing.T) {
	p := parseFull(t, "fn f(a: i32, a: i32) {}")
	if len(p.result.Errors) != 1 {
		t.Fatalf("want 1 error, got %d", len(p.result.Errors))
	}
	err := p.result.Errors[0]
	if err.Kind != ErrInvalidParameter {
		t.Fatalf("want InvalidParameter, got %s", err.Kind)
	}
	if err.Pos.Line != 1 || err.Pos.Index != 14 {
		t.Fatalf("unexpected position %s", err.Pos)
	}
	if n := len(p.builder.Files.Get(p.file).Items); n != 0 {
		t.Fatalf("broken function should be dropped, got %d items", n)
	}
}

func TestDuplicateFunctionsAreKept(t *testing.T) {
	b, file, bag := parseSource(t, "fn f() {}\nfn f() {}")
	if bag.Len() != 0 {
		t.Fatalf("duplicates are not a syntax error:\n%s", diagnosticsSummary(bag))
	}
	f := b.Files.Get(file)
	if len(f.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(f.Items))
	}
	fn := mustFn(t, b, file, 0)
	if f.Names[fn.Name] != f.Items[0] {
		t.Fatalf("first declaration should win in the name map")
	}
}
