package diagfmt

import (
	"fmt"
	"io"

	"forgelsp/internal/source"
	"forgelsp/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-13s %q at %s\n", i+1, tok.Kind.String(), tok.Text, formatSpan(tok.Span, fs)); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		})
	}
	return writeJSON(w, output)
}
