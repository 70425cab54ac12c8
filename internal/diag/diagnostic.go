package diag

import (
	"forgelsp/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a positioned finding. Primary is a half-open byte range in
// the coordinates of the document that was parsed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Shift moves the primary span and every note span right by n bytes.
func (d Diagnostic) Shift(n uint32) Diagnostic {
	if n == 0 {
		return d
	}
	d.Primary = d.Primary.ShiftRight(n)
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, note := range d.Notes {
			notes[i] = Note{Span: note.Span.ShiftRight(n), Msg: note.Msg}
		}
		d.Notes = notes
	}
	return d
}

// InFile rebinds all spans of the diagnostic to the given file.
func (d Diagnostic) InFile(id source.FileID) Diagnostic {
	d.Primary.File = id
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, note := range d.Notes {
			notes[i] = Note{Span: note.Span.WithFile(id), Msg: note.Msg}
		}
		d.Notes = notes
	}
	return d
}
