// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"forgelsp/internal/parser"
	"forgelsp/internal/source"
)

// CheckBounds verifies that every token, call and diagnostic span of res
// lies within [0, size]. It holds for any parse, including documents whose
// blocks were joined.
func CheckBounds(res parser.Result, size int) error {
	limit, err := safecast.Conv[uint32](size)
	if err != nil {
		return fmt.Errorf("size overflow: %w", err)
	}
	inside := func(sp source.Span) bool { return sp.Start <= sp.End && sp.End <= limit }

	for i, tok := range res.Tokens {
		if !inside(tok.Span) {
			return fmt.Errorf("token %d %s span %v outside [0,%d]", i, tok.Kind, tok.Span, limit)
		}
	}
	for i, d := range res.Diagnostics {
		if !inside(d.Primary) {
			return fmt.Errorf("diagnostic %d (%s) span %v outside [0,%d]", i, d.Code.ID(), d.Primary, limit)
		}
		for _, n := range d.Notes {
			if !inside(n.Span) {
				return fmt.Errorf("note of diagnostic %d span %v outside [0,%d]", i, n.Span, limit)
			}
		}
	}
	var bad error
	for _, fn := range res.Functions {
		fn.Walk(func(call *parser.ParsedFunction, _ int) bool {
			if bad == nil && !inside(call.Span) {
				bad = fmt.Errorf("call $%s span %v outside [0,%d]", call.Name, call.Span, limit)
			}
			return bad == nil
		})
	}
	return bad
}

// CheckCode runs the invariants of a bare ForgeScript parse of code:
//  1. tokens are ordered, non-overlapping and their Text is code[span]
//  2. every call's Matched is code[span], nested calls included
//  3. every argument piece lies inside its call and its Text is code[span]
func CheckCode(code string, res parser.Result) error {
	if err := CheckBounds(res, len(code)); err != nil {
		return err
	}

	var prevEnd uint32
	for i, tok := range res.Tokens {
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d %s at %v overlaps previous token ending at %d", i, tok.Kind, tok.Span, prevEnd)
		}
		prevEnd = tok.Span.End
		if got := code[tok.Span.Start:tok.Span.End]; got != tok.Text {
			return fmt.Errorf("token %d %s text %q, source has %q", i, tok.Kind, tok.Text, got)
		}
	}

	var bad error
	for _, fn := range res.Functions {
		fn.Walk(func(call *parser.ParsedFunction, _ int) bool {
			if bad == nil {
				bad = checkCall(code, call)
			}
			return bad == nil
		})
	}
	return bad
}

func checkCall(code string, call *parser.ParsedFunction) error {
	sp := call.Span
	if got := code[sp.Start:sp.End]; got != call.Matched {
		return fmt.Errorf("call $%s matched %q, source has %q", call.Name, call.Matched, got)
	}
	for i, slot := range call.Args {
		for _, a := range slot {
			if a.Span.Start < sp.Start || a.Span.End > sp.End || a.Span.Start > a.Span.End {
				return fmt.Errorf("arg %d of $%s span %v outside call span %v", i, call.Name, a.Span, sp)
			}
			if got := code[a.Span.Start:a.Span.End]; got != a.Text {
				return fmt.Errorf("arg %d of $%s text %q, source has %q", i, call.Name, a.Text, got)
			}
			if (a.Kind == parser.ArgFunction) != (a.Func != nil) {
				return fmt.Errorf("arg %d of $%s: kind %s with func=%v", i, call.Name, a.Kind, a.Func != nil)
			}
		}
	}
	return nil
}
