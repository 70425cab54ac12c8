package diag

import (
	"testing"

	"forgelsp/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(SemaUnknownFunction, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("expected limit of 2, got %d", b.Len())
	}

	unlimited := NewBag(0)
	dropped := unlimited.AddAll(make([]Diagnostic, 300))
	if dropped != 0 || unlimited.Len() != 300 {
		t.Fatalf("unlimited bag dropped %d, len %d", dropped, unlimited.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SemaArgCountTooFew, source.Span{Start: 10, End: 12}, "b"))
	b.Add(New(SevWarning, SemaUnknownFunction, source.Span{Start: 0, End: 4}, "a"))
	b.Add(NewError(SemaUnknownFunction, source.Span{Start: 0, End: 4}, "a"))
	b.Add(NewError(SemaArgCountTooFew, source.Span{Start: 10, End: 12}, "b"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup: expected 3 items, got %d", b.Len())
	}

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[0].Primary.Start != 0 {
		t.Errorf("errors must sort before warnings at the same span: %+v", items[0])
	}
	if items[2].Primary.Start != 10 {
		t.Errorf("expected last item at offset 10, got %+v", items[2])
	}
}

func TestBagFilterTransform(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, SemaInfo, source.Span{}, "w"))
	b.Add(NewError(SemaUnknownFunction, source.Span{}, "e"))

	b.Transform(func(d Diagnostic) Diagnostic {
		d.Severity = SevError
		return d
	})
	if b.HasWarnings() != true || !b.HasErrors() {
		t.Fatal("expected errors after transform")
	}
	b.Filter(func(d Diagnostic) bool { return d.Code != SemaInfo })
	if b.Len() != 1 {
		t.Fatalf("Filter: expected 1 item, got %d", b.Len())
	}
}

func TestDiagnosticShift(t *testing.T) {
	d := NewError(SemaUnknownFunction, source.Span{Start: 1, End: 3}, "x").
		WithNote(source.Span{Start: 1, End: 3}, "did you mean $a?")
	shifted := d.Shift(10)
	if shifted.Primary.Start != 11 || shifted.Notes[0].Span.End != 13 {
		t.Fatalf("Shift: %+v", shifted)
	}
	if d.Notes[0].Span.Start != 1 {
		t.Fatal("Shift must not mutate the original notes")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		SynUnclosedBracket:  "SYN2001",
		SemaArgCountTooMany: "SEM3005",
		IOLoadFileError:     "IO4001",
		UnknownCode:         "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: got %s, want %s", code, got, want)
		}
	}
}
