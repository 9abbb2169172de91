package ast

import (
	"fmt"

	"rill/internal/source"
)

type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprIdent
	ExprBinary
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota // +
	BinarySub                 // -
	BinaryMul                 // *
	BinaryDiv                 // /
	BinaryMod                 // %
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	default:
		return fmt.Sprintf("BinaryOp(%d)", op)
	}
}

// Name is the long form used by tree dumps (add, subtract, ...).
func (op BinaryOp) Name() string {
	switch op {
	case BinaryAdd:
		return "add"
	case BinarySub:
		return "subtract"
	case BinaryMul:
		return "multiply"
	case BinaryDiv:
		return "divide"
	case BinaryMod:
		return "modulo"
	default:
		return op.String()
	}
}

type ExprNumberData struct {
	Value int64
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee     source.StringID
	CalleeSpan source.Span
	Args       []ExprID
}
