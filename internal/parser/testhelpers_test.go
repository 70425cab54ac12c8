package parser

import (
	"fmt"
	"strings"
	"testing"

	"forgelsp/internal/diag"
	"forgelsp/internal/registry"
)

func req(name string) registry.Arg  { return registry.Arg{Name: name, Required: true} }
func opt(name string) registry.Arg  { return registry.Arg{Name: name} }
func rest(name string) registry.Arg { return registry.Arg{Name: name, Rest: true} }

// testRegistry:
//
//	$a    1..2 args, brackets required
//	$b    exactly 1
//	$c    exactly 2
//	$r    1 required + rest
//	$ping no brackets
//	$opt  optional brackets, 0..1
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	sigs := []registry.Signature{
		{Name: "$a", Brackets: registry.BracketsRequired, Args: []registry.Arg{req("x"), opt("y")}},
		{Name: "$b", Brackets: registry.BracketsRequired, Args: []registry.Arg{req("x")}},
		{Name: "$c", Brackets: registry.BracketsRequired, Args: []registry.Arg{req("x"), req("y")}},
		{Name: "$r", Brackets: registry.BracketsRequired, Args: []registry.Arg{req("x"), rest("more")}},
		{Name: "$ping", Brackets: registry.BracketsForbidden},
		{Name: "$opt", Brackets: registry.BracketsOptional, Args: []registry.Arg{opt("x")}},
		{Name: "$sendMessage", Brackets: registry.BracketsRequired, Args: []registry.Arg{req("content")}},
	}
	for _, s := range sigs {
		if err := r.Add(s); err != nil {
			t.Fatalf("add %s: %v", s.Name, err)
		}
	}
	return r
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// describe renders a call tree as a(b(1), 2) for compact assertions.
func describe(f *ParsedFunction) string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	if !f.HasBrackets {
		return sb.String()
	}
	sb.WriteByte('(')
	for i, slot := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		for _, a := range slot {
			if a.Kind == ArgFunction {
				sb.WriteString(describe(a.Func))
			} else {
				fmt.Fprintf(&sb, "%q", a.Text)
			}
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
