package parser

import (
	"strings"
	"testing"

	"forgelsp/internal/diag"
	"forgelsp/internal/token"
)

func TestNoMarkerIsSingleText(t *testing.T) {
	reg := testRegistry(t)
	inputs := []string{
		"hello world",
		"price: 5 [sale]; done",
		`escaped \$a[1] stays text`,
		"a lone $ sign",
		"$ $! $#",
		"multi\nline\r\ntext",
	}
	for _, in := range inputs {
		res := ParseCode(reg, in, Options{})
		if len(res.Diagnostics) != 0 || len(res.Functions) != 0 {
			t.Errorf("%q: diags=%s funcs=%d", in, diagnosticsSummary(res.Diagnostics), len(res.Functions))
		}
		if len(res.Tokens) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", in, len(res.Tokens))
		}
		tok := res.Tokens[0]
		if tok.Kind != token.Text || tok.Text != in || tok.Span.Start != 0 || int(tok.Span.End) != len(in) {
			t.Errorf("%q: unexpected token %+v", in, tok)
		}
	}
}

func TestEscapedMarkerIsNotACall(t *testing.T) {
	res := ParseCode(testRegistry(t), `\$foo`, Options{})
	for _, tok := range res.Tokens {
		if tok.Kind == token.FunctionName || tok.Kind == token.Unknown {
			t.Fatalf("unexpected call token %+v", tok)
		}
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
}

func TestDoubleBackslashLeavesMarkerActive(t *testing.T) {
	res := ParseCode(testRegistry(t), `\\$ping`, Options{})
	if len(res.Functions) != 1 || res.Functions[0].Name != "ping" {
		t.Fatalf("expected $ping call, got %d functions", len(res.Functions))
	}
	if res.Tokens[0].Kind != token.Text || res.Tokens[0].Text != `\\` {
		t.Fatalf("unexpected first token %+v", res.Tokens[0])
	}
}

func TestTokenStream(t *testing.T) {
	src := "Hi $ping, ${ return 1 } and $zzz!"
	res := ParseCode(testRegistry(t), src, Options{})
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Text, "Hi "},
		{token.FunctionName, "$ping"},
		{token.Text, ", "},
		{token.JavaScript, "${ return 1 }"},
		{token.Text, " and "},
		{token.Unknown, "$zzz"},
		{token.Text, "!"},
	}
	if len(res.Tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(res.Tokens), res.Tokens)
	}
	for i, w := range want {
		tok := res.Tokens[i]
		if tok.Kind != w.kind || tok.Text != w.text {
			t.Errorf("token %d: got %s %q, want %s %q", i, tok.Kind, tok.Text, w.kind, w.text)
		}
		if src[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Errorf("token %d: span %s does not cover %q", i, tok.Span, tok.Text)
		}
	}
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		src             string
		silent, negated bool
	}{
		{"$ping", false, false},
		{"$!ping", true, false},
		{"$#ping", false, true},
	}
	for _, tt := range tests {
		res := ParseCode(testRegistry(t), tt.src, Options{})
		if len(res.Functions) != 1 {
			t.Fatalf("%s: expected one function, got %d (%s)", tt.src, len(res.Functions), diagnosticsSummary(res.Diagnostics))
		}
		f := res.Functions[0]
		if f.Silent != tt.silent || f.Negated != tt.negated {
			t.Errorf("%s: silent=%v negated=%v", tt.src, f.Silent, f.Negated)
		}
		if res.Tokens[0].Text != tt.src {
			t.Errorf("%s: token text %q", tt.src, res.Tokens[0].Text)
		}
	}

	// only the first modifier counts; "$!#ping" has no name after "!"
	res := ParseCode(testRegistry(t), "$!#ping", Options{})
	if len(res.Functions) != 0 || len(res.Tokens) != 1 || res.Tokens[0].Kind != token.Text {
		t.Fatalf("unexpected result for double modifier: %+v", res.Tokens)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	res := ParseCode(testRegistry(t), "$SENDMESSAGE[hi]", Options{})
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
	f := res.Functions[0]
	if f.Name != "SENDMESSAGE" || f.Signature.Name != "$sendMessage" {
		t.Fatalf("name=%q signature=%q", f.Name, f.Signature.Name)
	}
}

func TestUnknownFunction(t *testing.T) {
	res := ParseCode(testRegistry(t), "$zzz[1]", Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SemaUnknownFunction {
		t.Fatalf("expected one unknown-function diagnostic, got %s", diagnosticsSummary(res.Diagnostics))
	}
	if len(res.Functions) != 0 {
		t.Fatalf("expected no functions, got %d", len(res.Functions))
	}
	d := res.Diagnostics[0]
	if d.Message != "Unknown function $zzz" || d.Primary.Start != 0 || d.Primary.End != 4 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(res.Tokens) != 1 || res.Tokens[0].Kind != token.Unknown {
		t.Fatalf("expected a single Unknown token, got %+v", res.Tokens)
	}
}

func TestUnicodeFunctionName(t *testing.T) {
	res := ParseCode(testRegistry(t), "$café[1]", Options{})
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %s", diagnosticsSummary(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Message != "Unknown function $café" || d.Primary.End != uint32(len("$café")) {
		t.Fatalf("name must cover every letter: %+v", d)
	}
}

func TestUnknownFunctionSuggestion(t *testing.T) {
	res := ParseCode(testRegistry(t), "$sendMesage[hi]", Options{})
	if len(res.Diagnostics) != 1 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
	notes := res.Diagnostics[0].Notes
	if len(notes) != 1 || notes[0].Msg != "did you mean $sendMessage?" {
		t.Fatalf("unexpected notes %+v", notes)
	}
}

func TestNilRegistry(t *testing.T) {
	res := ParseCode(nil, "$ping and $a[1]", Options{})
	if len(res.Functions) != 0 || len(res.Diagnostics) != 2 {
		t.Fatalf("funcs=%d diags=%s", len(res.Functions), diagnosticsSummary(res.Diagnostics))
	}
}

func TestUnclosedBracketAbortsScan(t *testing.T) {
	res := ParseCode(testRegistry(t), "$a[1", Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SynUnclosedBracket {
		t.Fatalf("expected one unclosed-bracket diagnostic, got %s", diagnosticsSummary(res.Diagnostics))
	}
	if sp := res.Diagnostics[0].Primary; sp.Start != 0 || sp.End != 4 {
		t.Fatalf("unexpected span %s", sp)
	}
	if len(res.Tokens) != 0 || len(res.Functions) != 0 {
		t.Fatalf("expected nothing after abort, got %d tokens %d functions", len(res.Tokens), len(res.Functions))
	}

	src := "$ping ok $b[1] then $a[2 $ping"
	res = ParseCode(testRegistry(t), src, Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SynUnclosedBracket {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
	if got := res.Diagnostics[0].Primary; int(got.Start) != strings.Index(src, "$a[") || int(got.End) != len(src) {
		t.Fatalf("unexpected span %s", got)
	}
	if len(res.Functions) != 2 {
		t.Fatalf("expected calls before the abort to survive, got %d", len(res.Functions))
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.Text || last.Text != " then " {
		t.Fatalf("unexpected last token %+v", last)
	}
}

func TestUnclosedBraceAbortsScan(t *testing.T) {
	src := "x ${ if (a) { b } $ping"
	res := ParseCode(testRegistry(t), src, Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SynUnclosedBrace {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
	if sp := res.Diagnostics[0].Primary; sp.Start != 2 || int(sp.End) != len(src) {
		t.Fatalf("unexpected span %s", sp)
	}
	if len(res.Tokens) != 1 || res.Tokens[0].Text != "x " || len(res.Functions) != 0 {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}
}

func TestEscapeCall(t *testing.T) {
	src := `$esc[$a[1]; \] raw] tail`
	res := ParseCode(testRegistry(t), src, Options{})
	if len(res.Diagnostics) != 0 || len(res.Functions) != 0 {
		t.Fatalf("diags=%s funcs=%d", diagnosticsSummary(res.Diagnostics), len(res.Functions))
	}
	if len(res.Tokens) != 2 {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}
	esc := res.Tokens[0]
	if esc.Kind != token.Escaped || esc.Text != `$a[1]; \` {
		t.Fatalf("unexpected escaped token %+v", esc)
	}
	if esc.Span.Start != 5 || src[esc.Span.Start:esc.Span.End] != esc.Text {
		t.Fatalf("unexpected escaped span %s", esc.Span)
	}
	if res.Tokens[1].Kind != token.Text || res.Tokens[1].Text != " raw] tail" {
		t.Fatalf("unexpected trailing token %+v", res.Tokens[1:])
	}

	res = ParseCode(testRegistry(t), "$EscapeCode[[x]]", Options{})
	if len(res.Tokens) != 1 || res.Tokens[0].Kind != token.Escaped || res.Tokens[0].Text != "[x]" {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}
}

func TestEscapeCallErrors(t *testing.T) {
	res := ParseCode(testRegistry(t), "$esc and more", Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SynMissingEscapeBrackets {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
	if res.Diagnostics[0].Message != "$esc expects brackets containing content to escape" {
		t.Fatalf("unexpected message %q", res.Diagnostics[0].Message)
	}
	if res.Tokens[0].Kind != token.Unknown || res.Tokens[0].Text != "$esc" {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}
	if len(res.Tokens) != 2 {
		t.Fatalf("scan should continue after a missing-bracket escape call, got %+v", res.Tokens)
	}

	res = ParseCode(testRegistry(t), "$esc[[x]", Options{})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.SynUnclosedBracket {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Diagnostics))
	}
}

func TestSpansCarryFileID(t *testing.T) {
	res := ParseCode(testRegistry(t), "x $zzz $b[1]", Options{File: 7})
	for _, tok := range res.Tokens {
		if tok.Span.File != 7 {
			t.Fatalf("token %+v has wrong file", tok)
		}
	}
	if res.Diagnostics[0].Primary.File != 7 || res.Functions[0].Span.File != 7 {
		t.Fatal("spans are not bound to the file")
	}
}

func TestNeverPanics(t *testing.T) {
	reg := testRegistry(t)
	inputs := []string{
		"", "$", "$$", "$[", "$a[", "$a[[", "$a]]", "${", "${}", "$!", "\\", "\\$", "$a[\\",
		"$a[$a[$a[$a[", "$esc[", "$esc", "]]]]", ";;;", "$a[;;;]", "$a[$]", "$a[\\$b[1]]",
		"日本語 $ping 日本", "$a[${]", "code: `",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("%q: panic %v", in, r)
				}
			}()
			ParseCode(reg, in, Options{})
			Parse(reg, in, Options{})
		}()
	}
}
