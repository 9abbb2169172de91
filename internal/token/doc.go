// Package token defines lexical token kinds for rill sources.
// Invariants:
//   - Token.Text is a slice of the original source (identifiers are NFC-normalised).
//   - Token.Span covers the lexeme exactly.
//   - Token.Pos is the 1-based line/index of Span.Start.
//   - The stream produced by the lexer always ends with exactly one EOF token.
package token
