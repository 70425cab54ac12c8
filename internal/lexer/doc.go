// Package lexer holds the byte-level building blocks of the ForgeScript
// scanner: the escape oracle, the balanced-span finders and a forward cursor.
//
// Everything here is pure and allocation free; offsets are byte indices into
// the buffer being scanned.
package lexer
