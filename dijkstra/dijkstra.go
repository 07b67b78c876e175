// Package dijkstra implements Dijkstra's shortest-path algorithm on the
// routing graph.
//
// Notes on implementation choices:
//
//   - Binary min-heap (container/heap) with lazy decrease-key: duplicates
//     are pushed and stale entries ignored when popped.
//   - Removed nodes are skipped during relaxation, so a pruned clone needs no
//     compaction before search.
//   - Predecessors are recorded as edge indices, so reconstruction recovers
//     the exact edge (kind, raceway) that was used, not just the node.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/raceroute/core"
)

// Dijkstra computes shortest distances from Options.Source over the live
// nodes of g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. Source must be set (ErrNoSource) and alive (ErrVertexNotFound).
//  3. Target, if set, must be alive (ErrVertexNotFound).
//  4. MaxDistance must be non-negative (ErrBadMaxDistance).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if g == nil {
		return nil, ErrNilGraph
	}
	if cfg.Source == noNode {
		return nil, ErrNoSource
	}
	if !g.Alive(cfg.Source) {
		return nil, fmt.Errorf("%w: source %d", ErrVertexNotFound, cfg.Source)
	}
	if cfg.Target != noNode && !g.Alive(cfg.Target) {
		return nil, fmt.Errorf("%w: target %d", ErrVertexNotFound, cfg.Target)
	}
	if cfg.MaxDistance < 0 || math.IsNaN(cfg.MaxDistance) {
		return nil, fmt.Errorf("%w: got %g", ErrBadMaxDistance, cfg.MaxDistance)
	}

	// 3) Prepare state and run
	n := g.NodeCount()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{Source: cfg.Source, Dist: r.dist, PrevEdge: r.prev}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph // read-only within Dijkstra
	options Options
	dist    []float64 // node → best known distance
	prev    []int     // node → edge used to reach it
	visited []bool    // node → distance finalized
	pq      nodePQ
}

// init sets dist=+Inf, prev=-1 everywhere and pushes the source at 0.
func (r *runner) init() {
	inf := math.Inf(1)
	for i := range r.dist {
		r.dist[i] = inf
		r.prev[i] = -1
	}
	r.dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process is the main loop: pop the closest node, stop on target or when
// the cap is exceeded, otherwise relax its edges.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if u == r.options.Target {
			break
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax improves distances of u's live neighbours.
func (r *runner) relax(u int) error {
	out, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %d: %w", u, err)
	}

	for _, eid := range out {
		e, err := r.g.Edge(eid)
		if err != nil {
			return fmt.Errorf("dijkstra: edge %d of node %d: %w", eid, u, err)
		}
		v := e.To
		if r.visited[v] || !r.g.Alive(v) {
			continue
		}
		if e.Weight < 0 {
			return fmt.Errorf("%w: edge %d→%d weight=%g", ErrNegativeWeight, u, v, e.Weight)
		}

		newDist := r.dist[u] + e.Weight
		if newDist > r.options.MaxDistance || newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.prev[v] = eid
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// Reached reports whether node v got a finite distance.
func (res *Result) Reached(v int) bool {
	return v >= 0 && v < len(res.Dist) && !math.IsInf(res.Dist[v], 1)
}

// PathTo returns the directed edge indices from the source to v, in travel
// order. The path to the source itself is empty.
//
// Complexity: O(path length).
func (res *Result) PathTo(g *core.Graph, v int) ([]int, error) {
	if !res.Reached(v) {
		return nil, ErrNoPath
	}

	var path []int
	for cur := v; cur != res.Source; {
		eid := res.PrevEdge[cur]
		if eid < 0 {
			return nil, fmt.Errorf("%w: broken predecessor chain at %d", ErrNoPath, cur)
		}
		path = append(path, eid)
		e, err := g.Edge(eid)
		if err != nil {
			return nil, err
		}
		cur = e.From
	}
	// Reverse into travel order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// nodeItem is a heap entry: node index and its distance when pushed.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int           { return len(pq) }
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
