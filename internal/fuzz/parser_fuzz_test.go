package fuzztests

import (
	"testing"
	"time"
	"unicode/utf8"

	"forgelsp/internal/parser"
	"forgelsp/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParseCodeInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		if !utf8.Valid(input) {
			t.Skip()
		}
		code := string(input)
		res := parser.ParseCode(fuzzRegistry(), code, parser.Options{MaxDepth: 8})
		if err := testkit.CheckCode(code, res); err != nil {
			t.Fatalf("%q: %v", code, err)
		}
	})
}

func FuzzParseDocumentBounds(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		doc := string(input)
		res := parser.Parse(fuzzRegistry(), doc, parser.Options{})
		if err := testkit.CheckBounds(res, len(doc)); err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
	})
}

// FuzzParseNoHang runs the parser under a timeout to catch infinite loops.
func FuzzParseNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("$a[$a[$a[$a[$a[$a[$a[$a[$a[$a[$a[x]]]]]]]]]]]"))
	f.Add([]byte("$$$$$$$$[[[[[[]]]]]]"))
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parser.Parse(fuzzRegistry(), string(input), parser.Options{Raw: true})
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parse did not finish within %s on %q", parseTimeout, input)
		}
	})
}
