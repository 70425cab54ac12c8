package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"forgelsp/internal/parser"
	"forgelsp/internal/source"
)

// FunctionOutput is the serialisable form of a parsed call tree.
type FunctionOutput struct {
	Name        string      `json:"name" msgpack:"name"`
	Matched     string      `json:"matched" msgpack:"matched"`
	Start       uint32      `json:"start" msgpack:"start"`
	End         uint32      `json:"end" msgpack:"end"`
	HasBrackets bool        `json:"has_brackets" msgpack:"has_brackets"`
	Silent      bool        `json:"silent,omitempty" msgpack:"silent,omitempty"`
	Negated     bool        `json:"negated,omitempty" msgpack:"negated,omitempty"`
	Output      string      `json:"output,omitempty" msgpack:"output,omitempty"`
	Args        [][]ArgJSON `json:"args,omitempty" msgpack:"args,omitempty"`
}

// ArgJSON is one piece of an argument slot.
type ArgJSON struct {
	Kind  string          `json:"kind" msgpack:"kind"`
	Text  string          `json:"text" msgpack:"text"`
	Start uint32          `json:"start" msgpack:"start"`
	End   uint32          `json:"end" msgpack:"end"`
	Func  *FunctionOutput `json:"function,omitempty" msgpack:"function,omitempty"`
}

// BuildFunctionsOutput converts parsed calls into their serialisable form.
func BuildFunctionsOutput(funcs []*parser.ParsedFunction) []FunctionOutput {
	out := make([]FunctionOutput, 0, len(funcs))
	for _, fn := range funcs {
		out = append(out, buildFunction(fn))
	}
	return out
}

func buildFunction(fn *parser.ParsedFunction) FunctionOutput {
	o := FunctionOutput{
		Name:        "$" + fn.Name,
		Matched:     fn.Matched,
		Start:       fn.Span.Start,
		End:         fn.Span.End,
		HasBrackets: fn.HasBrackets,
		Silent:      fn.Silent,
		Negated:     fn.Negated,
	}
	if fn.Signature != nil && len(fn.Signature.Output.Names) > 0 {
		o.Output = fn.Signature.Output.String()
	}
	for _, slot := range fn.Args {
		pieces := make([]ArgJSON, 0, len(slot))
		for _, a := range slot {
			p := ArgJSON{Kind: a.Kind.String(), Text: a.Text, Start: a.Span.Start, End: a.Span.End}
			if a.Func != nil {
				child := buildFunction(a.Func)
				p.Func = &child
			}
			pieces = append(pieces, p)
		}
		o.Args = append(o.Args, pieces)
	}
	return o
}

// FormatFunctionsJSON выводит дерево вызовов в JSON.
func FormatFunctionsJSON(w io.Writer, funcs []*parser.ParsedFunction) error {
	return writeJSON(w, BuildFunctionsOutput(funcs))
}

// FormatFunctionsMsgpack writes the call tree as MessagePack.
func FormatFunctionsMsgpack(w io.Writer, funcs []*parser.ParsedFunction) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildFunctionsOutput(funcs))
}

// FormatFunctionsPretty печатает дерево вызовов:
//
//	$send[1] (span: 1:1-1:9)
//	└─ arg[0]: $b[1] (span: 1:7-1:12)
//	   └─ arg[0]: "x"
func FormatFunctionsPretty(w io.Writer, funcs []*parser.ParsedFunction, fs *source.FileSet) error {
	var sb strings.Builder
	for _, fn := range funcs {
		writeFunction(&sb, fn, fs, "")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFunction(sb *strings.Builder, fn *parser.ParsedFunction, fs *source.FileSet, prefix string) {
	mods := ""
	if fn.Silent {
		mods += "!"
	}
	if fn.Negated {
		mods += "#"
	}
	label := "$" + mods + fn.Name
	if fn.HasBrackets {
		label += fmt.Sprintf("[%d]", len(fn.Args))
	}
	fmt.Fprintf(sb, "%s (span: %s)", label, formatSpan(fn.Span, fs))
	if fn.Signature != nil && len(fn.Signature.Output.Names) > 0 {
		fmt.Fprintf(sb, " -> %s", fn.Signature.Output)
	}
	sb.WriteByte('\n')

	for i, slot := range fn.Args {
		branch, next := "├─ ", "│  "
		if i == len(fn.Args)-1 {
			branch, next = "└─ ", "   "
		}
		for _, a := range slot {
			sb.WriteString(prefix + branch)
			if a.Kind == parser.ArgFunction && a.Func != nil {
				fmt.Fprintf(sb, "arg[%d]: ", i)
				writeFunction(sb, a.Func, fs, prefix+next)
				continue
			}
			fmt.Fprintf(sb, "arg[%d]: %q\n", i, a.Text)
		}
	}
}
