package parser

import (
	"rill/internal/ast"
	"rill/internal/token"
)

// Таблица приоритетов: чем больше число, тем выше приоритет.
// All binary operators are left-associative.
const (
	precNone           = -1
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * / %
)

func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return precNone
	}
}

func binaryOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Plus:
		return ast.BinaryAdd
	case token.Minus:
		return ast.BinarySub
	case token.Star:
		return ast.BinaryMul
	case token.Slash:
		return ast.BinaryDiv
	case token.Percent:
		return ast.BinaryMod
	default:
		panic("parser: not a binary operator: " + kind.String())
	}
}
