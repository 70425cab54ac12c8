package parser

import (
	"testing"

	"forgelsp/internal/diag"
)

func TestArity(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		msg  string
	}{
		{"$c[1]", diag.SemaArgCountTooFew, "expects at least 2 args, got 1"},
		{"$c[1;2]", 0, ""},
		{"$c[1;2;3]", diag.SemaArgCountTooMany, "expects at most 2 args, got 3"},
		{"$a[]", diag.SemaArgCountTooFew, "expects at least 1 args, got 0"},
		{"$r[1;2;3;4]", 0, ""},
		{"$r[1]", 0, ""},
		{"$opt", 0, ""},
		{"$opt[]", 0, ""},
		{"$opt[1;2]", diag.SemaArgCountTooMany, "expects at most 1 args, got 2"},
		{"$ping[1]", diag.SemaBracketsForbidden, "$ping does not accept brackets"},
		{"$b", diag.SemaBracketsRequired, "$b requires brackets"},
		{"$c", diag.SemaBracketsRequired, "$c requires brackets"},
	}
	for _, tt := range tests {
		res := ParseCode(testRegistry(t), tt.src, Options{})
		if len(res.Functions) != 1 {
			t.Errorf("%s: expected a recorded function", tt.src)
			continue
		}
		if tt.code == 0 {
			if len(res.Diagnostics) != 0 {
				t.Errorf("%s: unexpected diagnostics %s", tt.src, diagnosticsSummary(res.Diagnostics))
			}
			continue
		}
		if len(res.Diagnostics) != 1 {
			t.Errorf("%s: expected one diagnostic, got %s", tt.src, diagnosticsSummary(res.Diagnostics))
			continue
		}
		d := res.Diagnostics[0]
		if d.Code != tt.code || d.Message != tt.msg {
			t.Errorf("%s: got [%s] %q", tt.src, d.Code.ID(), d.Message)
		}
		if int(d.Primary.Start) != 0 || int(d.Primary.End) != len(tt.src) {
			t.Errorf("%s: span %s should cover the whole call", tt.src, d.Primary)
		}
	}
}

func TestTooFewKeepsArgs(t *testing.T) {
	res := ParseCode(testRegistry(t), "$c[1]", Options{})
	c := res.Functions[0]
	if c.Name != "c" || c.ArgCount() != 1 {
		t.Fatalf("unexpected function %s", describe(c))
	}
	if arg, ok := c.Arg(0); !ok || arg.Kind != ArgLiteral || arg.Text != "1" {
		t.Fatalf("unexpected arg %+v", arg)
	}
}
