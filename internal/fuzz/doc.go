// Package fuzztests houses Go fuzz harnesses for the ForgeScript front end
// (block extraction, scanner, argument splitter, call-site finder). They
// guard against panics, hangs and broken span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
