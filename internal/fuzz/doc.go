// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes through
// the whole rill pipeline (source -> lexer -> parser -> sema -> lower) and the
// formatter, guarding against panics, hangs and broken span invariants.
//
// Назначение: fuzz-обработчики поверх FileSet, лексера, драйвера и форматтера.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
