package parser

import (
	"errors"
	"strings"
	"testing"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/symbols"
)

func TestRecoverySkipsToNextFn(t *testing.T) {
	src := "fn good1() {}\nfn bad( {}\nfn good2() {}\n"
	p := parseFull(t, src)

	f := p.builder.Files.Get(p.file)
	if len(f.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(f.Items))
	}
	for i, want := range []string{"good1", "good2"} {
		if got := p.builder.Name(mustFn(t, p.builder, p.file, i).Name); got != want {
			t.Errorf("item %d: %q, want %q", i, got, want)
		}
	}

	if p.bag.Len() != 1 {
		t.Fatalf("want 1 diagnostic, got:\n%s", diagnosticsSummary(p.bag))
	}
	got := diag.FormatGoldenDiagnostics(p.bag.Items(), p.fs, false)
	if got != "error SYN2001 test.rl:2:9 unexpected token LBrace: expected parameter name" {
		t.Fatalf("unexpected diagnostics:\n%s", got)
	}
}

func TestMissingClosingParen(t *testing.T) {
	p := parseFull(t, "fn f(a: i32")
	if len(p.result.Errors) != 1 {
		t.Fatalf("want 1 error, got %d", len(p.result.Errors))
	}
	err := p.result.Errors[0]
	if err.Kind != ErrMissingToken || err.Expected != "')'" {
		t.Fatalf("unexpected error %#v", err)
	}
	if err.File != "test.rl" {
		t.Fatalf("file label %q", err.File)
	}
	if err.Pos.Line != 1 || err.Pos.Index != 12 {
		t.Fatalf("want position at EOF 1:12, got %s", err.Pos)
	}
	if !strings.Contains(err.Error(), "test.rl on line 1 at position 12") {
		t.Fatalf("message lacks location: %s", err.Error())
	}

	var perr *Error
	if !errors.As(error(err), &perr) {
		t.Fatalf("errors.As should match *parser.Error")
	}
}

func TestSignatureErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     ErrorKind
		expected string
		code     diag.Code
	}{
		{"no parens", "fn f {}", ErrMissingToken, "opening parenthesis '('", diag.SynMissingToken},
		{"no name", "fn (a: i32) {}", ErrUnexpectedToken, "", diag.SynUnexpectedToken},
		{"param not ident", "fn f(1: i32) {}", ErrUnexpectedToken, "", diag.SynUnexpectedToken},
		{"missing colon", "fn f(a i32) {}", ErrSyntax, "", diag.SynSyntaxError},
		{"missing param type", "fn f(a: ) {}", ErrMissingToken, "parameter type", diag.SynMissingToken},
		{"bad param type", "fn f(a: 1) {}", ErrMissingToken, "parameter type", diag.SynMissingToken},
		{"no separator", "fn f(a: i32 b: i32) {}", ErrMissingToken, "')'", diag.SynMissingToken},
		{"bad return type", "fn f() -> {}", ErrMissingToken, "return type", diag.SynMissingToken},
		{"no body", "fn f() -> i32", ErrMissingToken, "'{' or ';'", diag.SynMissingToken},
		{"statement not ret", "fn f() { x; }", ErrUnexpectedToken, "", diag.SynUnexpectedToken},
		{"missing semicolon", "fn f() -> i32 { ret 1 }", ErrSyntax, "", diag.SynSyntaxError},
		{"unclosed body", "fn f() -> i32 { ret 1;", ErrUnexpectedToken, "", diag.SynUnexpectedToken},
		{"duplicate param", "fn f(a: i32, a: Point);", ErrInvalidParameter, "", diag.SynInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseFull(t, tt.src)
			if len(p.result.Errors) != 1 {
				t.Fatalf("want 1 error, got %d: %v", len(p.result.Errors), p.result.Errors)
			}
			err := p.result.Errors[0]
			if err.Kind != tt.kind {
				t.Fatalf("kind %s, want %s (%v)", err.Kind, tt.kind, err)
			}
			if err.Expected != tt.expected {
				t.Fatalf("expected %q, want %q", err.Expected, tt.expected)
			}
			items := p.bag.Items()
			if len(items) != 1 || items[0].Code != tt.code || items[0].Severity != diag.SevError {
				t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(p.bag))
			}
			if items[0].Primary != err.Span {
				t.Fatalf("diagnostic span %s, error span %s", items[0].Primary, err.Span)
			}
		})
	}
}

func TestUnsupportedTopLevel(t *testing.T) {
	p := parseFull(t, "ret 1; x y z\nfn ok() {}")
	if n := len(p.builder.Files.Get(p.file).Items); n != 1 {
		t.Fatalf("want 1 item, got %d", n)
	}
	items := p.bag.Items()
	if len(items) != 1 {
		t.Fatalf("want one diagnostic for the whole junk run, got:\n%s", diagnosticsSummary(p.bag))
	}
	if items[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("code %s", items[0].Code.ID())
	}
	if p.result.Errors[0].Kind != ErrUnexpectedToken {
		t.Fatalf("kind %s", p.result.Errors[0].Kind)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n", "// only a comment\n"} {
		p := parseFull(t, src)
		if n := len(p.builder.Files.Get(p.file).Items); n != 0 {
			t.Fatalf("%q: want no items, got %d", src, n)
		}
		if len(p.result.Errors) != 0 || p.bag.Len() != 0 {
			t.Fatalf("%q: want no errors", src)
		}
	}
}

func TestMaxErrorsLimitsForwarding(t *testing.T) {
	src := "fn a( {}\nfn b( {}\nfn c( {}\n"
	toks := tokenizeString(t, src)
	bag := diag.NewBag(100)
	res := Parse(toks, symbols.NewContext(), ast.NewBuilder(ast.Hints{}, nil), Options{File: "x.rl", Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	if len(res.Errors) != 3 {
		t.Fatalf("want 3 recorded errors, got %d", len(res.Errors))
	}
	if bag.Len() != 2 {
		t.Fatalf("want 2 forwarded diagnostics, got %d", bag.Len())
	}
}

func TestErrorFormatting(t *testing.T) {
	p := parseFull(t, "fn f(a i32) {}\nfn g() -> { }\n")
	if len(p.result.Errors) != 2 {
		t.Fatalf("want 2 errors, got %d", len(p.result.Errors))
	}
	tests := []string{
		"syntax error in file test.rl on line 1 at position 8: expected ':' after parameter name 'a'",
		"missing token 'return type', expected in file: test.rl on line 2 at position 11",
	}
	for i, want := range tests {
		if got := p.result.Errors[i].Error(); got != want {
			t.Errorf("error %d:\n got %s\nwant %s", i, got, want)
		}
	}
}
