package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"forgelsp/internal/lexer"
)

var errTooDeep = errors.New("nesting too deep")

// splitArgs splits the interior of a call's brackets at top-level ";".
// at is the offset of interior inside s.src.
func (s *scanner) splitArgs(interior string, at int) ([]ArgSlot, error) {
	var (
		slots  []ArgSlot
		depth  int
		argLo  int
		sawSep bool
	)
	flush := func(hi int) error {
		arg, err := s.resolveArg(interior[argLo:hi], at+argLo)
		if err != nil {
			return err
		}
		slots = append(slots, ArgSlot{arg})
		return nil
	}
	for i := 0; i < len(interior); i++ {
		switch c := interior[i]; {
		case c == '\\' && i+1 < len(interior) && lexer.IsSpecial(interior[i+1]):
			i++
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			if err := flush(i); err != nil {
				return nil, err
			}
			argLo = i + 1
			sawSep = true
		}
	}
	if argLo < len(interior) || sawSep {
		if err := flush(len(interior)); err != nil {
			return nil, err
		}
	}
	return slots, nil
}

// resolveArg turns one raw argument into a literal or a nested call. raw
// starts at offset at of s.src.
func (s *scanner) resolveArg(raw string, at int) (ParsedArg, error) {
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	text := strings.TrimRightFunc(raw[lead:], unicode.IsSpace)
	at += lead
	lit := ParsedArg{Kind: ArgLiteral, Text: text, Span: s.span(at, at+len(text))}

	// "\$..." в начале аргумента запрещает вложенный вызов
	if !strings.HasPrefix(text, "$") {
		return lit, nil
	}
	if s.depth+1 > s.opts.maxDepth() {
		return ParsedArg{}, fmt.Errorf("%w (limit %d)", errTooDeep, s.opts.maxDepth())
	}
	sub := &scanner{
		reg:   s.reg,
		opts:  s.opts,
		depth: s.depth + 1,
		src:   text,
		base:  s.base + at,
		diags: s.diags,
	}
	sub.run()
	if len(sub.funcs) == 0 {
		return lit, nil
	}
	// Only the first nested call is kept; text after it is dropped.
	lit.Kind = ArgFunction
	lit.Func = sub.funcs[0]
	return lit, nil
}
