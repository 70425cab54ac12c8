package testkit

import (
	"testing"

	"forgelsp/internal/parser"
	"forgelsp/internal/registry"
	"forgelsp/internal/source"
	"forgelsp/internal/token"
)

func reg(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, name := range []string{"$a", "$b"} {
		if err := r.Add(registry.Signature{
			Name:     name,
			Brackets: registry.BracketsOptional,
			Args:     []registry.Arg{{Name: "x"}, {Name: "more", Rest: true}},
		}); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestCheckCodeAcceptsParserOutput(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"$a[ $b[x] ; y ] tail $esc[$raw] ${ js }",
		`$a[\$b[x];\;] $zzz $`,
		"$a[$b[$a[1;2]];3]",
		"unclosed $a[x",
	}
	for _, in := range inputs {
		res := parser.ParseCode(reg(t), in, parser.Options{})
		if err := CheckCode(in, res); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestCheckCodeRejectsBadToken(t *testing.T) {
	res := parser.Result{Tokens: []token.Token{{Kind: token.Text, Span: source.Span{Start: 0, End: 2}, Text: "no"}}}
	if err := CheckCode("hi", res); err == nil {
		t.Fatal("expected text mismatch")
	}
}

func TestCheckBoundsRejectsOutOfRange(t *testing.T) {
	res := parser.Result{Tokens: []token.Token{{Kind: token.Text, Span: source.Span{Start: 0, End: 9}}}}
	if err := CheckBounds(res, 3); err == nil {
		t.Fatal("expected bounds error")
	}
}
