// Package specialize turns a cached base graph into the graph searched for
// one cable: raceways the cable may not use are pruned, and ephemeral start
// and end nodes are wired in.
//
// The base graph is never modified; every request works on a Clone.
package specialize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/core"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/topology"
)

// ErrNilBase indicates a missing base graph.
var ErrNilBase = errors.New("specialize: nil base graph")

// Specialized is the per-request graph.
type Specialized struct {
	Graph *core.Graph
	// Start and End are the ephemeral cable endpoints.
	Start, End int
	// Removed lists pruned raceway IDs in ascending order.
	Removed []string
}

// Specialize clones base and prepares it for req.
//
// raceways must carry computed MaxFill values (as returned by a
// capacity.Registry). shared holds previously routed field segments; field
// candidates overlapping one of them are discounted by SharedPenalty.
//
// Steps:
//  1. Clone the base graph.
//  2. Prune raceways that are absent from raceways, lack capacity for
//     req.Area, or carry a foreign group tag.
//  3. Add start/end and field edges from both to every surviving node,
//     plus one direct start–end edge.
//  4. Add mid-span projections of start and end onto surviving raceways
//     that lie within ProximityThreshold.
func Specialize(base *topology.Base, raceways []capacity.Raceway, req route.Request, shared []geom.Segment, opts route.Options) (*Specialized, error) {
	if base == nil || base.Graph == nil {
		return nil, ErrNilBase
	}
	opts = opts.WithDefaults()
	sp := &specializer{opts: opts, shared: shared}

	// 1) Clone
	g := base.Graph.Clone()
	sp.g = g

	// 2) Prune
	roster := make(map[string]capacity.Raceway, len(raceways))
	for _, rw := range raceways {
		roster[rw.ID] = rw
	}
	var removed []string
	for _, id := range g.RacewayIDs() {
		rw, ok := roster[id]
		if ok && rw.Fits(req.Area) && rw.AcceptsGroup(req.Group) {
			continue
		}
		g.RemoveRaceway(id)
		removed = append(removed, id)
	}
	sort.Strings(removed)
	survivors := g.Nodes()

	// 3) Ephemeral endpoints
	start := g.AddNode(core.Node{Point: req.Start, Kind: core.NodeEphemeral})
	end := g.AddNode(core.Node{Point: req.End, Kind: core.NodeEphemeral})
	for _, n := range survivors {
		if err := sp.field(start, req.Start, n.Index, n.Point); err != nil {
			return nil, err
		}
		if err := sp.field(end, req.End, n.Index, n.Point); err != nil {
			return nil, err
		}
	}
	if err := sp.field(start, req.Start, end, req.End); err != nil {
		return nil, err
	}

	// 4) Mid-span entries
	ids := g.RacewayIDs()
	sort.Strings(ids)
	for _, id := range ids {
		s, e, ok := g.Endpoints(id)
		if !ok {
			continue
		}
		rw := roster[id]
		for _, anchor := range [2]struct {
			node int
			at   geom.Point
		}{{start, req.Start}, {end, req.End}} {
			if err := sp.project(rw, s, e, anchor.node, anchor.at); err != nil {
				return nil, err
			}
		}
	}

	return &Specialized{Graph: g, Start: start, End: end, Removed: removed}, nil
}

type specializer struct {
	g      *core.Graph
	opts   route.Options
	shared []geom.Segment
}

// penalty returns the field multiplier for the straight leg a→b.
func (sp *specializer) penalty(a, b geom.Point) float64 {
	cand := geom.Segment{Start: a, End: b}
	for _, s := range sp.shared {
		if _, ok := geom.SegmentsOverlap(cand, s, sp.opts.JunctionTolerance); ok {
			return sp.opts.FieldPenalty * sp.opts.SharedPenalty
		}
	}
	return sp.opts.FieldPenalty
}

func (sp *specializer) field(u int, up geom.Point, v int, vp geom.Point) error {
	w := geom.Manhattan(up, vp) * sp.penalty(up, vp)
	if _, err := sp.g.AddEdge(u, v, w, core.EdgeField, ""); err != nil {
		return fmt.Errorf("field edge %d-%d: %w", u, v, err)
	}
	return nil
}

func (sp *specializer) project(rw capacity.Raceway, s, e, anchor int, at geom.Point) error {
	q := geom.ProjectPointOnSegment(at, rw.Start, rw.End)
	if geom.Manhattan(at, q) > sp.opts.ProximityThreshold {
		return nil
	}
	p := sp.g.AddNode(core.Node{Point: q, Kind: core.NodeProjection, RacewayID: rw.ID})
	if _, err := sp.g.AddEdge(p, s, geom.Distance(q, rw.Start), core.EdgeRaceway, rw.ID); err != nil {
		return err
	}
	if _, err := sp.g.AddEdge(p, e, geom.Distance(q, rw.End), core.EdgeRaceway, rw.ID); err != nil {
		return err
	}
	return sp.field(anchor, at, p, q)
}
