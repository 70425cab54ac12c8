package diag

import "forgelsp/internal/source"

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), SliceReporter (копит в срез).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string, notes ...Note) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, msg, notes)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string, notes ...Note) {
	if r == nil {
		return
	}
	r.Report(code, SevWarning, primary, msg, notes)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// SliceReporter накапливает диагностики в порядке поступления, без лимита.
type SliceReporter struct {
	Items []Diagnostic
}

func (r *SliceReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	r.Items = append(r.Items, Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}
