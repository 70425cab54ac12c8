package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"forgelsp/internal/diag"
	"forgelsp/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path := displayPath(fs, d.Primary.File, opts.PathMode)
	var start source.LineCol
	if fs != nil {
		start, _ = fs.Resolve(d.Primary)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.bold.Sprintf("%s:%s", path, fmtLineCol(start)),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)

	if d.Code != diag.ObsTimings {
		snippet(w, d.Primary, fs, opts, p)
	}

	// заметка таймингов - JSON, в pretty она не нужна
	if !opts.ShowNotes || d.Code == diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		loc := ""
		if fs != nil && fs.Get(n.Span.File) != nil {
			s, _ := fs.Resolve(n.Span)
			loc = fmt.Sprintf("%s:%s: ", displayPath(fs, n.Span.File, opts.PathMode), fmtLineCol(s))
		}
		fmt.Fprintf(w, "  %s %s%s\n", p.note.Sprint("note:"), loc, n.Msg)
	}
}

// snippet prints the primary line with surrounding context and a caret
// underline. Multi-line spans are underlined to the end of their first line.
func snippet(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, p palette) {
	if fs == nil {
		return
	}
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	if maxLine := uint32(len(f.LineIdx) + 1); last > maxLine {
		last = maxLine
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		lo := min(int(start.Col-1), len(raw))
		hi := len(raw)
		if end.Line == start.Line {
			hi = min(int(end.Col-1), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:lo]))
		n := max(runewidth.StringWidth(expandTabs(raw[lo:hi])), 1)
		underline := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(underline))
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
