package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "load" || rep.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if !strings.Contains(tm.Summary(), "// 3 files") {
		t.Fatalf("summary misses note:\n%s", tm.Summary())
	}
}

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("expected one aggregated phase, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Count != 8 || rep.Phases[0].DurationMS < 8 {
		t.Fatalf("unexpected aggregate %+v", rep.Phases[0])
	}
	if !strings.Contains(tm.Summary(), "x8") {
		t.Fatalf("summary misses count:\n%s", tm.Summary())
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Fatalf("unexpected report %+v", rep)
	}
}
