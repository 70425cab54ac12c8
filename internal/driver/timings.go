package driver

import (
	"encoding/json"
	"fmt"

	"forgelsp/internal/diag"
	"forgelsp/internal/observ"
	"forgelsp/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic stores the timer report as an info diagnostic whose
// note carries the JSON payload. It bypasses the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg += " in " + payload.Path
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Notes:    []diag.Note{{Span: source.Span{}, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(0)
	overflow.Add(entry)
	bag.Merge(overflow)
}

// phaseTimer wraps an optional observ.Timer.
type phaseTimer struct{ t *observ.Timer }

func newPhaseTimer(enabled bool) phaseTimer {
	if !enabled {
		return phaseTimer{}
	}
	return phaseTimer{t: observ.NewTimer()}
}

func (p phaseTimer) begin(name string) int {
	if p.t == nil {
		return -1
	}
	return p.t.Begin(name)
}

func (p phaseTimer) end(idx int, note string) {
	if p.t == nil || idx < 0 {
		return
	}
	p.t.End(idx, note)
}

func (p phaseTimer) report(bag *diag.Bag, path string) *observ.Report {
	if p.t == nil {
		return nil
	}
	rep := p.t.Report()
	appendTimingDiagnostic(bag, timingPayload{Path: path, TotalMS: rep.TotalMS, Phases: rep.Phases})
	return &rep
}
