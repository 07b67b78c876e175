// Package route holds the value types exchanged by every stage of the
// routing pipeline: the per-cable Request, the Result every router returns,
// its Segments, and the tuning Options.
package route

import (
	"github.com/katalvlaran/raceroute/geom"
)

// NoPathMessage is the failure message of an unroutable graph search.
const NoPathMessage = "No valid path could be found."

// SegmentKind distinguishes raceway travel from open-space travel.
type SegmentKind string

const (
	// KindRaceway is travel inside a raceway (junction hops included).
	KindRaceway SegmentKind = "raceway"
	// KindField is open-space travel.
	KindField SegmentKind = "field"
)

// Segment is one straight leg of a compiled route.
type Segment struct {
	Kind      SegmentKind `json:"type"`
	Start     geom.Point  `json:"start"`
	End       geom.Point  `json:"end"`
	Length    float64     `json:"length"`
	RacewayID string      `json:"raceway_id,omitempty"`
}

// Span returns the geometric segment covered by s.
func (s Segment) Span() geom.Segment { return geom.Segment{Start: s.Start, End: s.End} }

// Request is one cable to route.
//
// When RacewayIDs is non-empty the explicit-list router is used. Otherwise a
// non-empty ManualPath selects the chain router (if it contains letters) or
// the waypoint router. Everything else goes through the graph search.
type Request struct {
	Cable      string     `json:"name,omitempty"`
	Start      geom.Point `json:"start"`
	End        geom.Point `json:"end"`
	Area       float64    `json:"area,omitempty"`
	Group      string     `json:"group,omitempty"`
	ManualPath string     `json:"manual_path,omitempty"`
	RacewayIDs []string   `json:"raceway_ids,omitempty"`
}

// Result is the outcome of routing one cable.
//
// On failure Success is false and Message explains why; the remaining
// fields are zero. Manual and ExplicitRaceways tell which router produced
// the result; both false means graph search.
type Result struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message,omitempty"`
	TotalLength      float64   `json:"total_length"`
	FieldLength      float64   `json:"field_length"`
	Segments         []Segment `json:"route_segments"`
	RacewaysUsed     []string  `json:"tray_segments"`
	Manual           bool      `json:"manual,omitempty"`
	ExplicitRaceways bool      `json:"explicit_raceways,omitempty"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// Failure returns an unsuccessful Result carrying msg.
func Failure(msg string) Result {
	return Result{Success: false, Message: msg}
}

// FieldSegments returns the field legs of r.
func (r Result) FieldSegments() []geom.Segment {
	var out []geom.Segment
	for _, s := range r.Segments {
		if s.Kind == KindField {
			out = append(out, s.Span())
		}
	}
	return out
}

// Summarize fills TotalLength, FieldLength and RacewaysUsed of r from its
// segments. RacewaysUsed lists distinct IDs in order of first use.
func (r *Result) Summarize() {
	r.TotalLength, r.FieldLength = 0, 0
	r.RacewaysUsed = r.RacewaysUsed[:0]
	seen := make(map[string]struct{})
	for _, s := range r.Segments {
		r.TotalLength += s.Length
		if s.Kind == KindField {
			r.FieldLength += s.Length
			continue
		}
		if s.RacewayID == "" {
			continue
		}
		if _, ok := seen[s.RacewayID]; !ok {
			seen[s.RacewayID] = struct{}{}
			r.RacewaysUsed = append(r.RacewaysUsed, s.RacewayID)
		}
	}
}
