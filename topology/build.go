package topology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/core"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

// ErrDuplicateRaceway indicates two raceways sharing one ID in a roster.
var ErrDuplicateRaceway = errors.New("topology: duplicate raceway ID")

// Base is a built base graph together with the fingerprint of the roster
// and options it was built from.
type Base struct {
	Fingerprint string      `json:"fingerprint"`
	Graph       *core.Graph `json:"graph"`
}

// Matches reports whether b was built from the same geometry and topology
// options.
func (b *Base) Matches(raceways []capacity.Raceway, opts route.Options) bool {
	return b != nil && b.Graph != nil && b.Fingerprint == Fingerprint(raceways, opts)
}

// pairKey is an unordered node pair.
type pairKey [2]int

func keyOf(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// candidate is a prospective field edge seen from one node.
type candidate struct {
	other int
	dist  float64
}

// builder carries the state of one Build call.
type builder struct {
	opts      route.Options
	g         *core.Graph
	connected map[pairKey]struct{}
	ends      map[string][2]int
}

// Build constructs the base graph for raceways.
//
// Raceways are processed in ID order so that identical rosters yield
// identical node and edge indices.
func Build(raceways []capacity.Raceway, opts route.Options) (*Base, error) {
	opts = opts.WithDefaults()
	sorted := sortedCopy(raceways)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRaceway, sorted[i].ID)
		}
	}

	b := &builder{
		opts:      opts,
		g:         core.NewGraph(core.WithCapacity(4*len(sorted), (4+opts.MaxFieldNeighbors)*2*len(sorted))),
		connected: make(map[pairKey]struct{}),
		ends:      make(map[string][2]int, len(sorted)),
	}

	// 1) Raceway endpoints and spans
	for _, rw := range sorted {
		if err := b.addRaceway(rw); err != nil {
			return nil, err
		}
	}
	// 2) Junctions
	for _, a := range sorted {
		for _, other := range sorted {
			if a.ID == other.ID {
				continue
			}
			if err := b.addJunctions(a, other); err != nil {
				return nil, err
			}
		}
	}
	// 3) Pruned field edges
	if err := b.addFieldEdges(); err != nil {
		return nil, err
	}

	return &Base{Fingerprint: Fingerprint(sorted, opts), Graph: b.g}, nil
}

func (b *builder) link(u, v int, w float64, kind core.EdgeKind, racewayID string) error {
	if _, err := b.g.AddEdge(u, v, w, kind, racewayID); err != nil {
		return err
	}
	b.connected[keyOf(u, v)] = struct{}{}
	return nil
}

func (b *builder) addRaceway(rw capacity.Raceway) error {
	s := b.g.AddNode(core.Node{Point: rw.Start, Kind: core.NodeRacewayEndpoint, RacewayID: rw.ID, Side: core.SideStart})
	e := b.g.AddNode(core.Node{Point: rw.End, Kind: core.NodeRacewayEndpoint, RacewayID: rw.ID, Side: core.SideEnd})
	b.ends[rw.ID] = [2]int{s, e}

	return b.link(s, e, rw.Length(), core.EdgeRaceway, rw.ID)
}

// addJunctions projects both endpoints of a onto other's span.
func (b *builder) addJunctions(a, other capacity.Raceway) error {
	aEnds := b.ends[a.ID]
	oEnds := b.ends[other.ID]
	for i, p := range [2]geom.Point{a.Start, a.End} {
		q := geom.ProjectPointOnSegment(p, other.Start, other.End)
		gap := geom.Distance(p, q)
		if gap >= b.opts.JunctionTolerance {
			continue
		}
		proj := b.g.AddNode(core.Node{Point: q, Kind: core.NodeProjection, RacewayID: other.ID})
		if err := b.link(aEnds[i], proj, gap, core.EdgeJunction, other.ID); err != nil {
			return err
		}
		if err := b.link(proj, oEnds[0], geom.Distance(q, other.Start), core.EdgeRaceway, other.ID); err != nil {
			return err
		}
		if err := b.link(proj, oEnds[1], geom.Distance(q, other.End), core.EdgeRaceway, other.ID); err != nil {
			return err
		}
	}
	return nil
}

// addFieldEdges keeps the MaxFieldNeighbors nearest field candidates of
// every node. A pair is kept if either endpoint keeps it.
func (b *builder) addFieldEdges() error {
	nodes := b.g.Nodes()
	cands := make([][]candidate, len(nodes))
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			ni, nj := nodes[i], nodes[j]
			if ni.RacewayID != "" && ni.RacewayID == nj.RacewayID {
				continue
			}
			if _, ok := b.connected[keyOf(ni.Index, nj.Index)]; ok {
				continue
			}
			d := geom.Manhattan(ni.Point, nj.Point)
			if d > b.opts.MaxFieldEdge {
				continue
			}
			cands[i] = append(cands[i], candidate{other: j, dist: d})
			cands[j] = append(cands[j], candidate{other: i, dist: d})
		}
	}

	keep := make(map[pairKey]float64)
	for i, list := range cands {
		sort.Slice(list, func(x, y int) bool {
			if list[x].dist != list[y].dist {
				return list[x].dist < list[y].dist
			}
			return list[x].other < list[y].other
		})
		if len(list) > b.opts.MaxFieldNeighbors {
			list = list[:b.opts.MaxFieldNeighbors]
		}
		for _, c := range list {
			keep[keyOf(nodes[i].Index, nodes[c.other].Index)] = c.dist
		}
	}

	// Deterministic insertion order.
	pairs := make([]pairKey, 0, len(keep))
	for k := range keep {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x][0] != pairs[y][0] {
			return pairs[x][0] < pairs[y][0]
		}
		return pairs[x][1] < pairs[y][1]
	})
	for _, k := range pairs {
		if err := b.link(k[0], k[1], keep[k]*b.opts.FieldPenalty, core.EdgeField, ""); err != nil {
			return err
		}
	}
	return nil
}

func sortedCopy(raceways []capacity.Raceway) []capacity.Raceway {
	out := make([]capacity.Raceway, len(raceways))
	copy(out, raceways)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
