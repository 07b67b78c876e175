// File: methods_nodes.go
// Role: Node lifecycle & queries: AddNode/Node/Alive/RemoveNode/Nodes,
//       raceway ownership lookups.
// Determinism:
//   - Nodes() and RacewayNodes() return indices in arena (insertion) order.
// Concurrency:
//   - Mutations under write lock, queries under read lock.

package core

// AddNode appends n to the arena and returns its index. n.Index is ignored
// and overwritten.
//
// Raceway endpoint nodes are also registered in the endpoint index so that
// Endpoints(racewayID) can find them in O(1).
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(n Node) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := len(g.nodes)
	n.Index = idx
	g.nodes = append(g.nodes, n)
	g.adj = append(g.adj, nil)
	g.removed = append(g.removed, false)

	if n.Kind == NodeRacewayEndpoint && n.RacewayID != "" {
		ends, ok := g.endpoints[n.RacewayID]
		if !ok {
			ends = [2]int{-1, -1}
		}
		switch n.Side {
		case SideStart:
			ends[0] = idx
		case SideEnd:
			ends[1] = idx
		}
		g.endpoints[n.RacewayID] = ends
	}

	return idx
}

// Node returns the node at index i, removed or not.
func (g *Graph) Node(i int) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if i < 0 || i >= len(g.nodes) {
		return Node{}, ErrNodeNotFound
	}
	return g.nodes[i], nil
}

// Alive reports whether i is a valid index of a node that has not been removed.
func (g *Graph) Alive(i int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return i >= 0 && i < len(g.nodes) && !g.removed[i]
}

// RemoveNode tombstones node i. Its edges stay in the arena; algorithms
// skip them by checking Alive on the far endpoint. Removing an already
// removed node is a no-op.
//
// Complexity: O(1).
func (g *Graph) RemoveNode(i int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.nodes) {
		return ErrNodeNotFound
	}
	if !g.removed[i] {
		g.removed[i] = true
		g.dead++
	}
	return nil
}

// NodeCount returns the arena size, including removed nodes. Valid indices
// are [0, NodeCount()).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// LiveNodeCount returns the number of nodes that have not been removed.
func (g *Graph) LiveNodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes) - g.dead
}

// Nodes returns a copy of every live node in index order.
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes)-g.dead)
	for i, n := range g.nodes {
		if !g.removed[i] {
			out = append(out, n)
		}
	}
	return out
}

// Endpoints returns the start and end node indices of a raceway. ok is false
// when either endpoint is missing or removed.
func (g *Graph) Endpoints(racewayID string) (start, end int, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ends, found := g.endpoints[racewayID]
	if !found || ends[0] < 0 || ends[1] < 0 {
		return -1, -1, false
	}
	if g.removed[ends[0]] || g.removed[ends[1]] {
		return ends[0], ends[1], false
	}
	return ends[0], ends[1], true
}

// RacewayIDs returns the IDs of every raceway owning at least one node, in
// first-seen order.
func (g *Graph) RacewayIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, n := range g.nodes {
		if n.RacewayID == "" {
			continue
		}
		if _, ok := seen[n.RacewayID]; ok {
			continue
		}
		seen[n.RacewayID] = struct{}{}
		out = append(out, n.RacewayID)
	}
	return out
}

// RemoveRaceway tombstones every node owned by racewayID (endpoints and
// projections) and returns how many were newly removed.
// Complexity: O(V).
func (g *Graph) RemoveRaceway(racewayID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for i, node := range g.nodes {
		if node.RacewayID == racewayID && !g.removed[i] {
			g.removed[i] = true
			g.dead++
			n++
		}
	}
	return n
}
