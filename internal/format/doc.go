// Package format prints rill source in canonical layout from a parsed AST.
//
// Назначение: `rill fmt` и проверка round-trip.
// Не делает: IO, восстановление после синтаксических ошибок.
// Текст между объявлениями (комментарии, пустые строки) копируется как есть;
// объявление с комментарием внутри тоже копируется без изменений.
package format
