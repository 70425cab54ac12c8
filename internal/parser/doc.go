// Package parser recovers the tree of ForgeScript function calls from a
// template, validates every call against the signature registry and reports
// positioned diagnostics.
//
// The pipeline is: block extraction (host document to ForgeScript buffer),
// a single left-to-right scan producing tokens and top-level calls, argument
// splitting with recursive sub-parses, and arity validation. Parsing performs
// no I/O, never fails and never panics on valid UTF-8 input; all problems are
// reported as diagnostics.
package parser
