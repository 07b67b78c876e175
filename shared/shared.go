// Package shared tracks field-routed stretches common to several cables.
//
// History is the append-only record of field segments consulted when
// specializing later routes (bundling discount). FindCommonFieldRoutes is
// the read-only batch report over completed routes.
package shared

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

// History is a thread-safe, append-only list of routed field segments.
// The zero value is ready to use.
type History struct {
	mu   sync.RWMutex
	segs []geom.Segment
}

// NewHistory returns a History seeded with segs.
func NewHistory(segs ...geom.Segment) *History {
	h := &History{}
	h.Append(segs...)
	return h
}

// Append records segs.
func (h *History) Append(segs ...geom.Segment) {
	h.mu.Lock()
	h.segs = append(h.segs, segs...)
	h.mu.Unlock()
}

// AppendRoute records the field legs of a successful result.
func (h *History) AppendRoute(res route.Result) {
	if !res.Success {
		return
	}
	h.Append(res.FieldSegments()...)
}

// Segments returns a snapshot copy of the recorded segments.
func (h *History) Segments() []geom.Segment {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]geom.Segment, len(h.segs))
	copy(out, h.segs)
	return out
}

// Len reports the number of recorded segments.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.segs)
}

// CableRoute is one completed route in a batch.
type CableRoute struct {
	Cable    string          `json:"cable"`
	Group    string          `json:"group,omitempty"`
	Segments []route.Segment `json:"route_segments"`
}

// AggregateOptions tunes FindCommonFieldRoutes.
type AggregateOptions struct {
	// Tolerance is the transverse overlap tolerance (route.DefaultAggregateTolerance when zero).
	Tolerance float64
	// Diameters maps cable names to outer diameters; when set, aggregates
	// carry the bundled cross-sectional area.
	Diameters map[string]float64
}

// Aggregate is one field stretch shared by two or more cables.
type Aggregate struct {
	Start     geom.Point `json:"start"`
	End       geom.Point `json:"end"`
	Length    float64    `json:"length"`
	Group     string     `json:"group,omitempty"`
	Cables    []string   `json:"cables"`
	TotalArea float64    `json:"total_area,omitempty"`
}

// FindCommonFieldRoutes compares the field segments of every pair of routes
// sharing a group (or both groupless) and returns one Aggregate per
// overlapping extent, keyed by its endpoints rounded to two decimals and
// the group. Output is ordered by that key; Cables are sorted.
func FindCommonFieldRoutes(routes []CableRoute, opts AggregateOptions) []Aggregate {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = route.DefaultAggregateTolerance
	}

	fields := make([][]geom.Segment, len(routes))
	for i, r := range routes {
		for _, s := range r.Segments {
			if s.Kind == route.KindField {
				fields[i] = append(fields[i], s.Span())
			}
		}
	}

	type acc struct {
		agg    Aggregate
		cables map[string]struct{}
	}
	byKey := make(map[string]*acc)

	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if routes[i].Group != routes[j].Group {
				continue
			}
			for _, a := range fields[i] {
				for _, b := range fields[j] {
					ov, ok := geom.SegmentsOverlap(a, b, tol)
					if !ok {
						continue
					}
					k := key(ov, routes[i].Group)
					entry, found := byKey[k]
					if !found {
						entry = &acc{
							agg: Aggregate{
								Start: round(ov.Start), End: round(ov.End),
								Length: ov.Length(), Group: routes[i].Group,
							},
							cables: make(map[string]struct{}),
						}
						byKey[k] = entry
					}
					entry.cables[routes[i].Cable] = struct{}{}
					entry.cables[routes[j].Cable] = struct{}{}
				}
			}
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Aggregate, 0, len(keys))
	for _, k := range keys {
		e := byKey[k]
		for c := range e.cables {
			e.agg.Cables = append(e.agg.Cables, c)
		}
		sort.Strings(e.agg.Cables)
		if opts.Diameters != nil {
			for _, c := range e.agg.Cables {
				if d, ok := opts.Diameters[c]; ok {
					e.agg.TotalArea += math.Pi * (d / 2) * (d / 2)
				}
			}
		}
		out = append(out, e.agg)
	}
	return out
}

func key(s geom.Segment, group string) string {
	a, b := round(s.Start), round(s.End)
	return fmt.Sprintf("%.2f,%.2f,%.2f|%.2f,%.2f,%.2f|%s", a[0], a[1], a[2], b[0], b[1], b[2], group)
}

func round(p geom.Point) geom.Point {
	for i := range p {
		p[i] = math.Round(p[i]*100) / 100
	}
	return p
}
