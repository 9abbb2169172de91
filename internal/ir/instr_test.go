package ir

import (
	"testing"

	"rill/internal/types"
)

func TestInstrString(t *testing.T) {
	tests := []struct {
		in   Instr
		want string
	}{
		{Instr{Op: OpFunc, Name: "add", Argc: 2, Type: types.I32()}, "func add/2 -> i32"},
		{Instr{Op: OpFunc, Name: "tick", Type: types.Void(), Decl: true}, "func tick/0 -> void decl"},
		{Instr{Op: OpParam, Name: "p", Slot: 1, Type: types.Named("Point")}, "param %1 p: Point"},
		{Instr{Op: OpConst, Value: -3}, "const -3"},
		{Instr{Op: OpLoad, Name: "a", Slot: 0}, "load %0 a"},
		{Instr{Op: OpCall, Name: "f", Argc: 3}, "call f/3"},
		{Instr{Op: OpMod}, "mod"},
		{Instr{Op: OpRet}, "ret"},
		{Instr{Op: OpEnd}, "end"},
		{Instr{Op: Op(200)}, "Op(200)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextSlots(t *testing.T) {
	c := NewContext()
	c.BeginFunc("f")
	if c.Bind("a") != 0 || c.Bind("b") != 1 || c.Bind("a") != 0 {
		t.Fatalf("unexpected slot assignment")
	}
	if slot, ok := c.Slot("b"); !ok || slot != 1 {
		t.Fatalf("slot b = %d, %v", slot, ok)
	}
	c.EndFunc()
	if _, ok := c.Slot("a"); ok {
		t.Fatalf("slots must not leak across functions")
	}
	c.BeginFunc("g")
	if c.Bind("z") != 0 || c.Func() != "g" || c.Funcs() != 2 {
		t.Fatalf("fresh function should start at slot 0")
	}
}
