package diagfmt

import (
	"strconv"

	"forgelsp/internal/source"
)

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return "<unknown>"
	}
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.mode(), fs.BaseDir())
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && fs.Get(span.File) != nil {
		start, end := fs.Resolve(span)
		return fmtLineCol(start) + "-" + fmtLineCol(end)
	}
	return span.String()
}

func fmtLineCol(lc source.LineCol) string {
	return strconv.FormatUint(uint64(lc.Line), 10) + ":" + strconv.FormatUint(uint64(lc.Col), 10)
}
