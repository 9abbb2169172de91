package ir

import (
	"fmt"
	"strings"

	"rill/internal/source"
	"rill/internal/types"
)

// Op enumerates stack machine instructions.
type Op uint8

const (
	OpInvalid Op = iota
	// OpFunc opens a function; Argc is the parameter count.
	OpFunc
	// OpParam binds parameter Name to local Slot.
	OpParam
	// OpConst pushes Value.
	OpConst
	// OpLoad pushes local Slot.
	OpLoad
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	// OpCall pops Argc values and pushes the result of calling Name.
	OpCall
	// OpRet pops the return value.
	OpRet
	// OpEnd closes the current function.
	OpEnd
)

var opNames = [...]string{
	OpInvalid: "invalid",
	OpFunc:    "func",
	OpParam:   "param",
	OpConst:   "const",
	OpLoad:    "load",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpMod:     "mod",
	OpCall:    "call",
	OpRet:     "ret",
	OpEnd:     "end",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Instr is one instruction. Only the fields relevant to Op are set.
type Instr struct {
	Op    Op
	Name  string
	Value int64
	Slot  int
	Argc  int
	Type  types.Type

	// Decl marks an OpFunc without a body.
	Decl bool
	Span source.Span
}

func (in Instr) String() string {
	switch in.Op {
	case OpFunc:
		var sb strings.Builder
		fmt.Fprintf(&sb, "func %s/%d -> %s", in.Name, in.Argc, in.Type)
		if in.Decl {
			sb.WriteString(" decl")
		}
		return sb.String()
	case OpParam:
		return fmt.Sprintf("param %%%d %s: %s", in.Slot, in.Name, in.Type)
	case OpConst:
		return fmt.Sprintf("const %d", in.Value)
	case OpLoad:
		return fmt.Sprintf("load %%%d %s", in.Slot, in.Name)
	case OpCall:
		return fmt.Sprintf("call %s/%d", in.Name, in.Argc)
	default:
		return in.Op.String()
	}
}
