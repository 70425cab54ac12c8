package parser

import (
	"fmt"
	"strings"

	"forgelsp/internal/diag"
	"forgelsp/internal/lexer"
	"forgelsp/internal/registry"
	"forgelsp/internal/source"
	"forgelsp/internal/token"
)

// escapeCalls are the literal-escape pseudo-functions; their bracket
// interior is never parsed.
var escapeCalls = []string{"esc", "escapeCode"}

func isEscapeCall(name string) bool {
	for _, n := range escapeCalls {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// scanner — состояние одного прохода по буферу. Вложенные разборы аргументов
// получают свой scanner с общим списком диагностик.
type scanner struct {
	reg   Registry
	opts  Options
	depth int

	src  string
	base int // смещение src в координатах документа
	cur  lexer.Cursor

	tokens    []token.Token
	funcs     []*ParsedFunction
	diags     *[]diag.Diagnostic
	textStart int
}

func (s *scanner) span(lo, hi int) source.Span {
	return source.Span{File: s.opts.File, Start: off32(s.base + lo), End: off32(s.base + hi)}
}

func (s *scanner) report(d diag.Diagnostic) {
	*s.diags = append(*s.diags, d)
}

// openText starts a text run at the cursor unless one is pending.
func (s *scanner) openText() {
	if s.textStart < 0 {
		s.textStart = s.cur.Off
	}
}

func (s *scanner) flushText(end int) {
	if s.textStart < 0 {
		return
	}
	if end > s.textStart {
		s.tokens = append(s.tokens, token.Token{
			Kind: token.Text,
			Span: s.span(s.textStart, end),
			Text: s.src[s.textStart:end],
		})
	}
	s.textStart = -1
}

func (s *scanner) emit(kind token.Kind, lo, hi int) {
	s.tokens = append(s.tokens, token.Token{Kind: kind, Span: s.span(lo, hi), Text: s.src[lo:hi]})
}

func (s *scanner) run() {
	s.cur = lexer.NewCursor(s.src)
	s.textStart = -1
	for !s.cur.EOF() {
		b := s.cur.Peek()
		switch {
		case b == '\\' && lexer.IsSpecial(s.cur.PeekAt(1)):
			// экранированная пара остаётся в тексте как есть
			s.openText()
			s.cur.Off += 2
		case b == '$':
			if !s.scanMarker() {
				return
			}
		default:
			s.openText()
			s.cur.Bump()
		}
	}
	s.flushText(len(s.src))
}

// scanMarker handles an unescaped "$" at the cursor. It returns false when
// the scan must stop because of an unterminated bracket or brace.
func (s *scanner) scanMarker() bool {
	start := s.cur.Off
	if s.cur.PeekAt(1) == '{' {
		return s.scanScript(start)
	}

	m := s.cur.Mark()
	s.cur.Bump()
	var silent, negated bool
	switch s.cur.Peek() {
	case '!':
		silent = true
		s.cur.Bump()
	case '#':
		negated = true
		s.cur.Bump()
	}
	nameStart := s.cur.Off
	if s.cur.EatRunesWhile(lexer.IsNameRune) == 0 {
		// "$" без имени — обычный текст
		s.cur.Reset(m)
		s.openText()
		s.cur.Bump()
		return true
	}
	nameEnd := s.cur.Off
	name := s.src[nameStart:nameEnd]
	s.flushText(start)

	if isEscapeCall(name) {
		return s.scanEscapeCall(start, nameEnd, name)
	}

	call := callSite{start: start, nameEnd: nameEnd, end: nameEnd, name: name, silent: silent, negated: negated}
	if s.cur.Peek() == '[' {
		open := s.cur.Off
		closeIdx, ok := lexer.MatchBracket(s.src, open)
		if !ok {
			s.report(diag.NewError(diag.SynUnclosedBracket, s.span(start, len(s.src)),
				fmt.Sprintf("unclosed bracket in call to $%s", name)))
			return false
		}
		call.hasBrackets = true
		call.interior = s.src[open+1 : closeIdx]
		call.interiorAt = open + 1
		call.end = closeIdx + 1
	}
	s.cur.Off = call.end
	s.scanCall(call)
	return true
}

// scanScript consumes an inline ${ ... } block.
func (s *scanner) scanScript(start int) bool {
	closeIdx, ok := lexer.MatchBrace(s.src, start+1)
	if !ok {
		s.flushText(start)
		s.report(diag.NewError(diag.SynUnclosedBrace, s.span(start, len(s.src)),
			"unclosed brace in inline script block"))
		return false
	}
	s.flushText(start)
	s.emit(token.JavaScript, start, closeIdx+1)
	s.cur.Off = closeIdx + 1
	return true
}

// scanEscapeCall handles $esc[...]: the interior becomes one Escaped token.
func (s *scanner) scanEscapeCall(start, nameEnd int, name string) bool {
	if s.cur.Peek() != '[' {
		s.report(diag.NewError(diag.SynMissingEscapeBrackets, s.span(start, nameEnd),
			fmt.Sprintf("$%s expects brackets containing content to escape", name)))
		s.emit(token.Unknown, start, nameEnd)
		return true
	}
	open := s.cur.Off
	closeIdx, ok := lexer.MatchBracketRaw(s.src, open)
	if !ok {
		s.report(diag.NewError(diag.SynUnclosedBracket, s.span(start, len(s.src)),
			fmt.Sprintf("unclosed bracket in call to $%s", name)))
		return false
	}
	s.emit(token.Escaped, open+1, closeIdx)
	s.cur.Off = closeIdx + 1
	return true
}

// callSite is an ordinary call whose brackets, if any, are already matched.
type callSite struct {
	start, nameEnd, end int
	name                string
	silent, negated     bool
	hasBrackets         bool
	interior            string
	interiorAt          int
}

func (s *scanner) scanCall(c callSite) {
	var (
		sig *registry.Signature
		ok  bool
	)
	if s.reg != nil {
		sig, ok = s.reg.Lookup("$" + c.name)
	}
	if !ok {
		s.emit(token.Unknown, c.start, c.nameEnd)
		s.report(s.unknownFunction(c))
		return
	}

	fn := &ParsedFunction{
		Name:        c.name,
		Matched:     s.src[c.start:c.end],
		HasBrackets: c.hasBrackets,
		Span:        s.span(c.start, c.end),
		Silent:      c.silent,
		Negated:     c.negated,
		Signature:   sig,
	}
	s.emit(token.FunctionName, c.start, c.nameEnd)
	s.funcs = append(s.funcs, fn)

	bracketsOK := true
	if d, bad := checkBrackets(sig, c.name, c.hasBrackets, fn.Span); bad {
		s.report(d)
		bracketsOK = false
	}
	if !c.hasBrackets {
		return
	}
	args, err := s.splitArgs(c.interior, c.interiorAt)
	if err != nil {
		s.report(diag.NewError(diag.SynArgParseFailure, fn.Span,
			fmt.Sprintf("failed to parse arguments of $%s: %v", c.name, err)))
		return
	}
	fn.Args = args
	if !bracketsOK {
		return
	}
	if d, bad := checkArity(sig, len(args), fn.Span); bad {
		s.report(d)
	}
}

func (s *scanner) unknownFunction(c callSite) diag.Diagnostic {
	sp := s.span(c.start, c.nameEnd)
	d := diag.NewError(diag.SemaUnknownFunction, sp, fmt.Sprintf("Unknown function $%s", c.name))
	if sg, ok := s.reg.(suggester); ok {
		for _, alt := range sg.Suggest(c.name, 1) {
			d = d.WithNote(sp, fmt.Sprintf("did you mean %s?", alt))
		}
	}
	return d
}
