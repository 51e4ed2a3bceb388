package domain

import (
	"fmt"
	"sort"
	"time"
)

// Phase is one of the three temporal states of the flood event.
type Phase string

const (
	PhasePreFlood     Phase = "pre_flood"
	PhaseDuringEvent  Phase = "during_event"
	PhasePostAnalysis Phase = "post_analysis"
)

// Phases lists every phase in comparison order.
var Phases = []Phase{PhasePreFlood, PhaseDuringEvent, PhasePostAnalysis}

// phaseInfo collects the per-phase constants used for generation and display.
type phaseInfo struct {
	order     int
	short     string // id suffix
	folder    string // asset directory under /Snippet
	date      time.Time
	satellite string
	orbit     string
	label     string
	title     string
	status    string
}

var phaseTable = map[Phase]phaseInfo{
	PhasePreFlood: {
		order:     0,
		short:     "pre",
		folder:    "17th May,2025",
		date:      time.Date(2025, time.May, 17, 0, 0, 0, 0, time.UTC),
		satellite: "Sentinel-1A",
		orbit:     "descending",
		label:     "Pre-Flood",
		title:     "Pre-Flood Baseline",
		status:    "Normal",
	},
	PhaseDuringEvent: {
		order:     1,
		short:     "during",
		folder:    "1st June,2025",
		date:      time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		satellite: "Sentinel-1A",
		orbit:     "descending",
		label:     "During Event",
		title:     "During Flood Event",
		status:    "Critical",
	},
	PhasePostAnalysis: {
		order:     2,
		short:     "post",
		folder:    "4th July",
		date:      time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		satellite: "Sentinel-1B",
		orbit:     "ascending",
		label:     "Post-Event",
		title:     "Post-Event Analysis",
		status:    "Recovery",
	},
}

// ParsePhase validates a phase string.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
	return p, nil
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	_, ok := phaseTable[p]
	return ok
}

// Order is the position of p in the comparison order, or -1 if unknown.
func (p Phase) Order() int {
	info, ok := phaseTable[p]
	if !ok {
		return -1
	}
	return info.order
}

// Folder is the asset directory name for p.
func (p Phase) Folder() string { return phaseTable[p].folder }

// Label is the short control label, e.g. "Pre-Flood".
func (p Phase) Label() string { return phaseTable[p].label }

// Title is the viewer heading, e.g. "Pre-Flood Baseline".
func (p Phase) Title() string { return phaseTable[p].title }

// Status is the analytics status label: Normal, Critical or Recovery.
func (p Phase) Status() string { return phaseTable[p].status }

// Date is the capture and analysis date associated with p.
func (p Phase) Date() time.Time { return phaseTable[p].date }

// SortByPhase orders images pre_flood < during_event < post_analysis without
// modifying the input.
func SortByPhase(images []SARImage) []SARImage {
	out := make([]SARImage, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Phase.Order() < out[j].Phase.Order()
	})
	return out
}
