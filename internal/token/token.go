package token

import (
	"forgelsp/internal/source"
)

// Token represents a single scanned token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsCall reports whether the token stands for a call site, known or not.
func (t Token) IsCall() bool {
	return t.Kind == FunctionName || t.Kind == Unknown
}

// Shift returns the token moved right by n bytes.
func (t Token) Shift(n uint32) Token {
	t.Span = t.Span.ShiftRight(n)
	return t
}
