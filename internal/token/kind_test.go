package token_test

import (
	"testing"

	"forgelsp/internal/source"
	"forgelsp/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Text:         "Text",
		token.FunctionName: "FunctionName",
		token.Escaped:      "Escaped",
		token.JavaScript:   "JavaScript",
		token.Unknown:      "Unknown",
		token.Kind(200):    "Invalid",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsCall(t *testing.T) {
	if !(token.Token{Kind: token.FunctionName}).IsCall() || !(token.Token{Kind: token.Unknown}).IsCall() {
		t.Fatal("FunctionName and Unknown are call tokens")
	}
	if (token.Token{Kind: token.Escaped}).IsCall() {
		t.Fatal("Escaped is not a call token")
	}
	moved := token.Token{Span: source.Span{Start: 1, End: 2}}.Shift(4)
	if moved.Span.Start != 5 || moved.Span.End != 6 {
		t.Fatalf("Shift: %+v", moved.Span)
	}
}
