package parser

import (
	"fmt"

	"rill/internal/diag"
	"rill/internal/source"
	"rill/internal/token"
)

// ErrorKind classifies grammar failures.
type ErrorKind uint8

const (
	// ErrUnexpectedToken: a concrete token where the grammar forbids it, EOF included.
	ErrUnexpectedToken ErrorKind = iota
	// ErrMissingToken: a specific token or category was absent.
	ErrMissingToken
	// ErrSyntax: a structural rule with a free-form explanation.
	ErrSyntax
	// ErrInvalidParameter: a parameter well-formedness rule.
	ErrInvalidParameter
	// ErrGeneric: the token stream ended without an EOF marker and similar.
	ErrGeneric
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrMissingToken:
		return "MissingToken"
	case ErrSyntax:
		return "SyntaxError"
	case ErrInvalidParameter:
		return "InvalidParameter"
	case ErrGeneric:
		return "GenericError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a grammar failure that aborted one top-level declaration.
type Error struct {
	Kind     ErrorKind
	File     string
	Pos      source.Position
	Span     source.Span
	Token    token.Token
	Expected string // for ErrMissingToken
	Message  string
	// Fixes are machine-applicable repairs offered with the diagnostic.
	Fixes []diag.Fix
	code  diag.Code
}

// suggestInsert offers inserting text right after sp.
func (e *Error) suggestInsert(sp source.Span, text string) *Error {
	at := source.Span{File: sp.File, Start: sp.End, End: sp.End}
	e.Fixes = append(e.Fixes, diag.Fix{
		Title: fmt.Sprintf("insert '%s'", text),
		Edits: []diag.FixEdit{{Span: at, NewText: text}},
	})
	return e
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token '%s' in file: %s on line %d at position %d", e.Token, e.File, e.Pos.Line, e.Pos.Index)
	case ErrMissingToken:
		return fmt.Sprintf("missing token '%s', expected in file: %s on line %d at position %d", e.Expected, e.File, e.Pos.Line, e.Pos.Index)
	case ErrSyntax:
		return fmt.Sprintf("syntax error in file %s on line %d at position %d: %s", e.File, e.Pos.Line, e.Pos.Index, e.Message)
	case ErrInvalidParameter:
		return fmt.Sprintf("invalid parameter: %s in file %s on line %d at position %d", e.Message, e.File, e.Pos.Line, e.Pos.Index)
	default:
		return "error: " + e.Message
	}
}

// Summary is the location-free text used as the diagnostic message.
func (e *Error) Summary() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		if e.Message != "" {
			return fmt.Sprintf("unexpected token %s: %s", e.Token, e.Message)
		}
		return fmt.Sprintf("unexpected token %s", e.Token)
	case ErrMissingToken:
		return "missing " + e.Expected
	case ErrInvalidParameter:
		return "invalid parameter: " + e.Message
	default:
		return e.Message
	}
}

// Code maps the error onto a diagnostic code.
func (e *Error) Code() diag.Code {
	if e.code != diag.UnknownCode {
		return e.code
	}
	switch e.Kind {
	case ErrUnexpectedToken:
		return diag.SynUnexpectedToken
	case ErrMissingToken:
		return diag.SynMissingToken
	case ErrSyntax:
		return diag.SynSyntaxError
	case ErrInvalidParameter:
		return diag.SynInvalidParameter
	default:
		return diag.SynGeneric
	}
}
