package parser

import (
	"forgelsp/internal/diag"
	"forgelsp/internal/registry"
	"forgelsp/internal/source"
	"forgelsp/internal/token"
)

// ArgKind discriminates ParsedArg.
type ArgKind uint8

const (
	// ArgLiteral is plain argument text, escapes kept verbatim.
	ArgLiteral ArgKind = iota
	// ArgFunction is an argument that starts with a nested call.
	ArgFunction
)

func (k ArgKind) String() string {
	if k == ArgFunction {
		return "function"
	}
	return "literal"
}

// ParsedArg is one piece of an argument slot.
type ParsedArg struct {
	Kind ArgKind
	Text string      // trimmed argument text
	Span source.Span // span of Text
	Func *ParsedFunction
}

// ArgSlot is one argument position. It always holds exactly one piece for now.
type ArgSlot []ParsedArg

// ParsedFunction is a recognised call to a registered function.
type ParsedFunction struct {
	Name        string // без маркера "$", как написано в исходнике
	Matched     string // "$name[...]" целиком
	Args        []ArgSlot
	HasBrackets bool
	Span        source.Span // от "$" до закрывающей "]" (или до конца имени)
	Silent      bool        // модификатор "!"
	Negated     bool        // модификатор "#"
	Signature   *registry.Signature
}

// ArgCount is the number of argument slots.
func (f *ParsedFunction) ArgCount() int {
	return len(f.Args)
}

// Arg returns the first piece of slot i.
func (f *ParsedFunction) Arg(i int) (ParsedArg, bool) {
	if i < 0 || i >= len(f.Args) || len(f.Args[i]) == 0 {
		return ParsedArg{}, false
	}
	return f.Args[i][0], true
}

// Walk visits f and every nested call depth-first. Returning false from fn
// skips the children of that call.
func (f *ParsedFunction) Walk(fn func(call *ParsedFunction, depth int) bool) {
	f.walk(fn, 0)
}

func (f *ParsedFunction) walk(fn func(*ParsedFunction, int) bool, depth int) {
	if !fn(f, depth) {
		return
	}
	for _, slot := range f.Args {
		for _, a := range slot {
			if a.Kind == ArgFunction && a.Func != nil {
				a.Func.walk(fn, depth+1)
			}
		}
	}
}

// Result is the outcome of one parse. Functions holds top-level calls only;
// nested calls are reachable through their parent's Args.
type Result struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
	Functions   []*ParsedFunction
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Report forwards every diagnostic to rep.
func (r *Result) Report(rep diag.Reporter) {
	if rep == nil {
		return
	}
	for _, d := range r.Diagnostics {
		rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
