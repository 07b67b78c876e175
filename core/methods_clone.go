// File: methods_clone.go
// Role: Cloning graph instances.
// Determinism:
//   - Clone preserves every node and edge index, tombstones included.
// Concurrency:
//   - Read lock on the source only; the clone is a fresh, unshared instance.

package core

// Clone returns an independent copy of the Graph.
//
// Node, edge and tombstone arenas are copied. Adjacency rows are shared with
// the source but clipped to cap == len, so the first AddEdge touching a row
// on the clone reallocates that row instead of writing into the source.
// This keeps "clone the cached base graph, then specialize" cheap: O(V + E)
// memmove with no per-edge allocation.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := &Graph{
		nodes:     make([]Node, len(g.nodes)),
		edges:     make([]Edge, len(g.edges)),
		adj:       make([][]int, len(g.adj)),
		removed:   make([]bool, len(g.removed)),
		dead:      g.dead,
		endpoints: make(map[string][2]int, len(g.endpoints)),
	}
	copy(clone.nodes, g.nodes)
	copy(clone.edges, g.edges)
	copy(clone.removed, g.removed)
	for i, row := range g.adj {
		clone.adj[i] = row[:len(row):len(row)]
	}
	for id, ends := range g.endpoints {
		clone.endpoints[id] = ends
	}

	return clone
}
