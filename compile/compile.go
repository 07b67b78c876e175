// Package compile turns a solver path into route segments.
//
// Pipeline (Compile):
//
//  1. Segments: every path edge becomes one raceway segment or up to three
//     axis-aligned field legs (X, then Y, then Z). Junction edges bridge a
//     gap below the touch tolerance and yield no segment, so the raceway on
//     the far side is only reported once the path actually runs along it.
//     Zero-length segments are dropped.
//  2. RemoveBacktracking: a raceway segment overshooting the point where
//     the following field leg turns back along the same axis is trimmed.
//  3. Consolidate: consecutive segments of one raceway are merged.
package compile

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/raceroute/core"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

// ErrEmptyPath indicates a path without edges.
var ErrEmptyPath = errors.New("compile: empty path")

// Compile runs the full pipeline over edges (directed edge indices of g in
// travel order) and returns a successful, summarized Result.
func Compile(g *core.Graph, edges []int) (route.Result, error) {
	segs, err := Segments(g, edges)
	if err != nil {
		return route.Result{}, err
	}
	res := route.Result{
		Success:  true,
		Segments: Consolidate(RemoveBacktracking(segs)),
	}
	res.Summarize()
	return res, nil
}

// Segments converts edges into output segments without cleanup.
func Segments(g *core.Graph, edges []int) ([]route.Segment, error) {
	if len(edges) == 0 {
		return nil, ErrEmptyPath
	}
	out := make([]route.Segment, 0, len(edges)*2)
	for _, ei := range edges {
		e, err := g.Edge(ei)
		if err != nil {
			return nil, err
		}
		from, err := g.Node(e.From)
		if err != nil {
			return nil, err
		}
		to, err := g.Node(e.To)
		if err != nil {
			return nil, err
		}

		switch e.Kind {
		case core.EdgeField:
			out = append(out, Decompose(from.Point, to.Point)...)
			continue
		case core.EdgeJunction:
			continue
		}
		length := geom.Distance(from.Point, to.Point)
		if length == 0 {
			continue
		}
		id := e.RacewayID
		if id == "" {
			id = from.RacewayID
		}
		if id == "" {
			id = to.RacewayID
		}
		out = append(out, route.Segment{
			Kind: route.KindRaceway, Start: from.Point, End: to.Point, Length: length, RacewayID: id,
		})
	}
	return out, nil
}

// Decompose splits the field move a→b into axis-aligned legs along X, Y
// and Z in that order. Zero legs are omitted; the leg lengths sum to the
// Manhattan distance between a and b.
func Decompose(a, b geom.Point) []route.Segment {
	var out []route.Segment
	cur := a
	for _, ax := range geom.Axes {
		d := b[ax] - cur[ax]
		if d == 0 {
			continue
		}
		next := cur.With(ax, b[ax])
		if d < 0 {
			d = -d
		}
		out = append(out, route.Segment{Kind: route.KindField, Start: cur, End: next, Length: d})
		cur = next
	}
	return out
}

// RemoveBacktracking trims every raceway segment that is immediately
// followed by a field leg running back along the same axis. Both are
// shortened by the overshoot, capped at the smaller of their extents on
// that axis; segments reduced to zero length are dropped. The input is
// not modified.
func RemoveBacktracking(segs []route.Segment) []route.Segment {
	out := make([]route.Segment, len(segs))
	copy(out, segs)

	for i := 0; i+1 < len(out); i++ {
		rw, fl := &out[i], &out[i+1]
		if rw.Kind != route.KindRaceway || fl.Kind != route.KindField {
			continue
		}
		ax, err := geom.Orientation(rw.Span())
		if err != nil {
			continue
		}
		fax, err := geom.Orientation(fl.Span())
		if err != nil || fax != ax {
			continue
		}
		dr := rw.End[ax] - rw.Start[ax]
		df := fl.End[ax] - fl.Start[ax]
		if dr*df >= 0 {
			continue
		}
		overshoot := minAbs(dr, df)
		cut := rw.End[ax] + df/abs(df)*overshoot

		rw.End = rw.End.With(ax, cut)
		rw.Length = geom.Distance(rw.Start, rw.End)
		fl.Start = rw.End
		fl.Length = geom.Manhattan(fl.Start, fl.End)
	}

	kept := out[:0]
	for _, s := range out {
		if s.Length > geom.Epsilon {
			kept = append(kept, s)
		}
	}
	return kept
}

// Consolidate merges consecutive raceway segments sharing a raceway ID.
// Consolidate(Consolidate(s)) equals Consolidate(s).
func Consolidate(segs []route.Segment) []route.Segment {
	out := make([]route.Segment, 0, len(segs))
	for _, s := range segs {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if s.Kind == route.KindRaceway && last.Kind == route.KindRaceway &&
				s.RacewayID != "" && s.RacewayID == last.RacewayID {
				last.End = s.End
				last.Length += s.Length
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// Validate checks that consecutive segments join end to start within tol.
// Compiled graph paths join within the junction tolerance.
func Validate(segs []route.Segment, tol float64) error {
	for i := 1; i < len(segs); i++ {
		if !segs[i-1].End.ApproxEqual(segs[i].Start, tol) {
			return fmt.Errorf("compile: gap between segment %d and %d", i-1, i)
		}
	}
	return nil
}

func minAbs(a, b float64) float64 {
	a, b = abs(a), abs(b)
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
