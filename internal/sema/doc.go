// Package sema checks a parsed file against the symbol context: name
// resolution, i32 arithmetic, call arity and argument types, and return
// types. A declaration stops at its first error and is left out of the
// result; the rest of the file is still analysed.
package sema
