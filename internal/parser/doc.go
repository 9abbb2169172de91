// Package parser turns a token stream into an arena-backed AST.
//
// Grammar:
//
//	program   := item*
//	item      := 'fn' IDENT params ['->' type] ('{' stmt* '}' | ';')
//	params    := '(' [param {',' param}] ')'
//	param     := IDENT ':' type
//	type      := 'i32' | IDENT
//	stmt      := 'ret' expr ';'
//	expr      := term {('+'|'-') term}
//	term      := factor {('*'|'/'|'%') factor}
//	factor    := NUMBER | IDENT [ '(' [expr {',' expr}] ')' ] | '(' expr ')'
//
// A malformed declaration is reported, dropped, and parsing resumes at the
// next `fn`.
package parser
