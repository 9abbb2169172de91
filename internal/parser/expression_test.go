package parser

import (
	"testing"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1", "1"},
		{"x", "x"},
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"8 / 4 % 3", "(% (/ 8 4) 3)"},
		{"1 * 2 + 3 * 4", "(+ (* 1 2) (* 3 4))"},
		{"((x))", "x"},
		{"f()", "(call f)"},
		{"f", "f"},
		{"f(1, g(x) + 2)", "(call f 1 (+ (call g x) 2))"},
		{"9223372036854775807", "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			b, file, bag := parseSource(t, "fn t() -> i32 { ret "+tt.expr+"; }")
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
			}
			fn := mustFn(t, b, file, 0)
			if got := sexpr(b, retExpr(t, b, fn)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParenthesisedSpan(t *testing.T) {
	b, file, _ := parseSource(t, "fn t() -> i32 { ret (1 + 2); }")
	fn := mustFn(t, b, file, 0)
	expr := b.Exprs.Get(retExpr(t, b, fn))
	// `(` at offset 20, `)` ends at 27
	if expr.Span.Start != 20 || expr.Span.End != 27 {
		t.Fatalf("unexpected span %s", expr.Span)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		kind     ErrorKind
		expected string
	}{
		{"unclosed group", "(1 + 2", ErrMissingToken, "')'"},
		{"unclosed call", "f(1, 2", ErrMissingToken, "',' or ')' in function call"},
		{"dangling operator", "1 +", ErrUnexpectedToken, ""},
		{"unary minus", "-1", ErrUnexpectedToken, ""},
		{"overflow", "9223372036854775808", ErrSyntax, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseFull(t, "fn t() -> i32 { ret "+tt.expr+"; }")
			if len(p.result.Errors) != 1 {
				t.Fatalf("want 1 error, got %d", len(p.result.Errors))
			}
			err := p.result.Errors[0]
			if err.Kind != tt.kind {
				t.Fatalf("kind %s, want %s (%v)", err.Kind, tt.kind, err)
			}
			if err.Expected != tt.expected {
				t.Fatalf("expected %q, want %q", err.Expected, tt.expected)
			}
		})
	}
}
