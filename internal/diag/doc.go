// Package diag defines the diagnostic model shared by the lexer, parser and
// semantic passes.
//
// Producers emit through a Reporter and never print. BagReporter collects
// into a Bag that supports limits, sorting, deduplication and severity
// promotion. Rendering lives in internal/diagfmt; FormatGoldenDiagnostics
// here gives tests and the short CLI format a stable one-line-per-entry form.
package diag
