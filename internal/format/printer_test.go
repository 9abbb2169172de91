package format

import (
	"errors"
	"testing"

	"rill/internal/ast"
	"rill/internal/source"
)

func parseSource(t *testing.T, src string) (*source.File, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.rl", []byte(src)))
	b, fid, failed := parseOnce(sf)
	if failed {
		t.Fatalf("parse failed for %q", src)
	}
	return sf, b, fid
}

func formatString(t *testing.T, src string, opt Options) string {
	t.Helper()
	sf, b, fid := parseSource(t, src)
	out, err := FormatFile(sf, b, fid, opt)
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	return string(out)
}

func TestFormatFile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opt  Options
		want string
	}{
		{
			name: "canonical spacing",
			src:  "fn add(a:i32,b :i32)->i32{ret a+b;}\nfn main(){}",
			want: "fn add(a: i32, b: i32) -> i32 {\n    ret a + b;\n}\n\nfn main() {}\n",
		},
		{
			name: "declaration only",
			src:  "fn   ext( x : Point )  ->Point ;",
			want: "fn ext(x: Point) -> Point;\n",
		},
		{
			name: "redundant parens dropped",
			src:  "fn f(a: i32, b: i32, c: i32) -> i32 { ret (a*b)+c; }",
			want: "fn f(a: i32, b: i32, c: i32) -> i32 {\n    ret a * b + c;\n}\n",
		},
		{
			name: "needed parens kept",
			src:  "fn f(a: i32, b: i32, c: i32) -> i32 { ret ((a - (b - c)) * (a + b)); }",
			want: "fn f(a: i32, b: i32, c: i32) -> i32 {\n    ret (a - (b - c)) * (a + b);\n}\n",
		},
		{
			name: "calls and literals",
			src:  "fn f() -> i32 { ret g(007,(2),h()); }",
			want: "fn f() -> i32 {\n    ret g(7, 2, h());\n}\n",
		},
		{
			name: "blank lines collapse",
			src:  "\n\n  fn a();\n\n\n\nfn b();   fn c();\n\n",
			want: "fn a();\n\nfn b();\n\nfn c();\n",
		},
		{
			name: "comments preserved",
			src:  "// header\nfn a();\n\n\n\n// doc\nfn b() { // inside\n   ret 1; }\n",
			want: "// header\nfn a();\n\n// doc\nfn b() { // inside\n   ret 1; }\n",
		},
		{
			name: "tabs",
			src:  "fn f() -> i32 { ret 1; }",
			opt:  Options{UseTabs: true},
			want: "fn f() -> i32 {\n\tret 1;\n}\n",
		},
		{
			name: "indent width",
			src:  "fn f() -> i32 { ret 1; }",
			opt:  Options{IndentWidth: 2},
			want: "fn f() -> i32 {\n  ret 1;\n}\n",
		},
		{
			name: "empty",
			src:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatString(t, tt.src, tt.opt)
			if got != tt.want {
				t.Fatalf("got:\n%q\nwant:\n%q", got, tt.want)
			}
			if again := formatString(t, got, tt.opt); again != got {
				t.Fatalf("not idempotent:\n%q\nthen:\n%q", got, again)
			}
		})
	}
}

func TestFormatFileRejectsBadInput(t *testing.T) {
	sf, b, _ := parseSource(t, "fn main() {}")
	if _, err := FormatFile(nil, b, 1, Options{}); !errors.Is(err, ErrNilFile) {
		t.Fatalf("nil file: %v", err)
	}
	if _, err := FormatFile(sf, nil, 1, Options{}); !errors.Is(err, ErrNilBuilder) {
		t.Fatalf("nil builder: %v", err)
	}
	if _, err := FormatFile(sf, b, ast.NoFileID, Options{}); !errors.Is(err, ErrNoAST) {
		t.Fatalf("no file: %v", err)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"clean", "fn add(a: i32, b: i32) -> i32 { ret a + b; }\nfn main() {}\n", true},
		{"commented", "// c\nfn f(); // trailing\n", true},
		{"syntax error", "fn f( {\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			sf := fs.Get(fs.AddVirtual("rt.rl", []byte(tt.src)))
			ok, msg := CheckRoundTrip(sf, Options{})
			if ok != tt.ok {
				t.Fatalf("ok=%v (%s), want %v", ok, msg, tt.ok)
			}
		})
	}
}

func TestCollapseBlankLines(t *testing.T) {
	got := string(collapseBlankLines([]byte("\n\n\n\n// a\n \n\n\n// b\n")))
	want := "\n\n// a\n \n// b\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
