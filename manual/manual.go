// Package manual routes cables along operator-given paths instead of
// searching: a raceway chain ("T1>T2>T3"), a waypoint list
// ("x,y,z;x,y,z") or an explicit raceway-ID list.
//
// Every router returns a route.Result and never an error: invalid input
// yields a failed Result whose Message explains the problem. Field legs are
// decomposed into X, Y, Z legs like graph-search output.
package manual

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/compile"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

// IsChain reports whether a manual path string names raceways (it contains
// a letter) rather than waypoints.
func IsChain(path string) bool {
	return strings.IndexFunc(path, unicode.IsLetter) >= 0
}

// ParseChain splits a chain string on '>' and whitespace.
func ParseChain(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '>' || unicode.IsSpace(r)
	})
}

// Route dispatches req to Explicit, Chain or Waypoints. It reports false
// when req carries no manual instruction at all.
func Route(req route.Request, raceways []capacity.Raceway, opts route.Options) (route.Result, bool) {
	switch {
	case len(req.RacewayIDs) > 0:
		return Explicit(req, raceways, opts), true
	case strings.TrimSpace(req.ManualPath) == "":
		return route.Result{}, false
	case IsChain(req.ManualPath):
		return Chain(req, raceways, opts), true
	default:
		return Waypoints(req), true
	}
}

// Chain routes req through the raceways named by req.ManualPath. Any
// unknown raceway, group conflict, capacity shortfall or gap between
// consecutive raceways fails the route.
func Chain(req route.Request, raceways []capacity.Raceway, opts route.Options) route.Result {
	c := chain{req: req, opts: opts.WithDefaults(), roster: index(raceways), strict: true}
	return c.run(ParseChain(req.ManualPath))
}

// Explicit routes req through req.RacewayIDs. Unknown IDs are skipped with
// a warning; every other check is as strict as Chain.
func Explicit(req route.Request, raceways []capacity.Raceway, opts route.Options) route.Result {
	c := chain{req: req, opts: opts.WithDefaults(), roster: index(raceways)}
	return c.run(req.RacewayIDs)
}

func index(raceways []capacity.Raceway) map[string]capacity.Raceway {
	out := make(map[string]capacity.Raceway, len(raceways))
	for _, rw := range raceways {
		out[rw.ID] = rw
	}
	return out
}

// chain carries one chain or explicit-list routing attempt.
type chain struct {
	req      route.Request
	opts     route.Options
	roster   map[string]capacity.Raceway
	strict   bool
	warnings []string
}

func (c *chain) fail(format string, args ...interface{}) route.Result {
	res := route.Failure(fmt.Sprintf(format, args...))
	c.mark(&res)
	return res
}

func (c *chain) mark(res *route.Result) {
	res.Manual = c.strict
	res.ExplicitRaceways = !c.strict
	res.Warnings = c.warnings
}

func (c *chain) run(ids []string) route.Result {
	// 1) Resolve and validate every raceway
	var selected []capacity.Raceway
	for _, id := range ids {
		rw, ok := c.roster[id]
		if !ok {
			if c.strict {
				return c.fail("Raceway %s not found", id)
			}
			c.warnings = append(c.warnings, fmt.Sprintf("Unknown raceway %s skipped", id))
			continue
		}
		if !rw.AcceptsGroup(c.req.Group) {
			return c.fail("Raceway %s is reserved for group %q, cable group is %q", id, rw.Group, c.req.Group)
		}
		if !rw.Fits(c.req.Area) {
			return c.fail("Raceway %s lacks capacity: fill %.2f + %.2f exceeds %.2f",
				id, rw.CurrentFill, c.req.Area, rw.MaxFill)
		}
		selected = append(selected, rw)
	}
	if len(selected) == 0 {
		return c.fail("No known raceways to route through")
	}

	// 2) Walk the chain: each raceway runs start to end and must begin where
	// the previous one stopped. With AllowReverse a raceway may run end to
	// start; the first one is then entered at the end nearer the cable start.
	var segs []route.Segment
	first := selected[0]
	entry, exit := first.Start, first.End
	if c.opts.AllowReverse && geom.Distance(c.req.Start, first.End) < geom.Distance(c.req.Start, first.Start) {
		entry, exit = exit, entry
	}
	segs = append(segs, compile.Decompose(c.req.Start, entry)...)
	segs = appendRaceway(segs, first.ID, entry, exit)

	for i := 1; i < len(selected); i++ {
		prev, rw := selected[i-1], selected[i]
		switch {
		case geom.Distance(exit, rw.Start) <= c.opts.JunctionTolerance:
			entry, exit = rw.Start, rw.End
		case c.opts.AllowReverse && geom.Distance(exit, rw.End) <= c.opts.JunctionTolerance:
			entry, exit = rw.End, rw.Start
		default:
			return c.fail("Raceway sequence mismatch: %s ends at %v but %s starts at %v (gap %.2f)",
				prev.ID, exit, rw.ID, rw.Start, geom.Distance(exit, rw.Start))
		}
		segs = appendRaceway(segs, rw.ID, entry, exit)
	}
	segs = append(segs, compile.Decompose(exit, c.req.End)...)

	// 3) Assemble
	res := route.Result{Success: true, Segments: compile.Consolidate(segs)}
	c.mark(&res)
	res.Summarize()
	return res
}

func appendRaceway(segs []route.Segment, id string, from, to geom.Point) []route.Segment {
	l := geom.Distance(from, to)
	if l == 0 {
		return segs
	}
	return append(segs, route.Segment{Kind: route.KindRaceway, Start: from, End: to, Length: l, RacewayID: id})
}
