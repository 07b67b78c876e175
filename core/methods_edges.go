// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/Edge/Neighbors/Connected/EdgeCount/Edges.
// Determinism:
//   - Edge indices are assigned in insertion order; forward entry 2k, reverse 2k+1.
//   - Neighbors(u) lists edges in the order they were attached to u.
// Concurrency:
//   - Mutations under write lock, queries under read lock.

package core

import (
	"fmt"
	"math"
)

// AddEdge creates an undirected edge between from and to and returns the
// index of its forward entry (from→to). The reverse entry is at index+1.
//
// Steps:
//  1. Validate weight (non-negative, not NaN) and reject self-loops.
//  2. Validate both endpoints exist and are alive.
//  3. Append forward and reverse entries; link them into both adjacency rows.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to int, weight float64, kind EdgeKind, racewayID string) (int, error) {
	// 1) Input validation
	if weight < 0 || math.IsNaN(weight) {
		return -1, fmt.Errorf("%w: %d→%d weight=%g", ErrNegativeWeight, from, to, weight)
	}
	if from == to {
		return -1, ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2) Endpoint validation
	for _, i := range [2]int{from, to} {
		if i < 0 || i >= len(g.nodes) {
			return -1, fmt.Errorf("%w: %d", ErrNodeNotFound, i)
		}
		if g.removed[i] {
			return -1, fmt.Errorf("%w: %d", ErrNodeRemoved, i)
		}
	}

	// 3) Store both directed entries and link adjacency
	eid := len(g.edges)
	g.edges = append(g.edges,
		Edge{From: from, To: to, Weight: weight, Kind: kind, RacewayID: racewayID},
		Edge{From: to, To: from, Weight: weight, Kind: kind, RacewayID: racewayID},
	)
	g.adj[from] = append(g.adj[from], eid)
	g.adj[to] = append(g.adj[to], Reverse(eid))

	return eid, nil
}

// Edge returns the directed edge entry at index e.
func (g *Graph) Edge(e int) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if e < 0 || e >= len(g.edges) {
		return Edge{}, ErrEdgeNotFound
	}
	return g.edges[e], nil
}

// Neighbors returns the outgoing edge indices of node u, including edges
// whose far endpoint has been removed; callers filter with Alive.
//
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(u int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if u < 0 || u >= len(g.nodes) {
		return nil, ErrNodeNotFound
	}
	row := g.adj[u]
	return row[:len(row):len(row)], nil
}

// Connected reports whether an edge joins u and v directly.
// Complexity: O(deg(u)).
func (g *Graph) Connected(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if u < 0 || u >= len(g.adj) {
		return false
	}
	for _, e := range g.adj[u] {
		if g.edges[e].To == v {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of undirected edges in the arena, including
// those touching removed nodes.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges) / 2
}

// Edges returns the forward entry of every undirected edge whose endpoints
// are both alive, in index order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, 0, len(g.edges)/2)
	for i := 0; i < len(g.edges); i += 2 {
		e := g.edges[i]
		if g.removed[e.From] || g.removed[e.To] {
			continue
		}
		out = append(out, e)
	}
	return out
}
