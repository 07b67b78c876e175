// File: methods_json.go
// Role: JSON encoding of a Graph, used to ship a cached base graph across the
//       worker boundary.
// Determinism:
//   - Encoding lists nodes and forward edge entries in index order, so
//     decoding reproduces identical indices.

package core

import (
	"fmt"

	"github.com/sugawarayuuta/sonnet"
)

// graphJSON is the wire shape of a Graph.
type graphJSON struct {
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	Removed []int  `json:"removed,omitempty"`
}

// MarshalJSON implements json.Marshaler (encoded with sonnet). Only forward entries are written.
func (g *Graph) MarshalJSON() ([]byte, error) {
	g.mu.RLock()
	w := graphJSON{
		Nodes: make([]Node, len(g.nodes)),
		Edges: make([]Edge, 0, len(g.edges)/2),
	}
	copy(w.Nodes, g.nodes)
	for i := 0; i < len(g.edges); i += 2 {
		w.Edges = append(w.Edges, g.edges[i])
	}
	for i, dead := range g.removed {
		if dead {
			w.Removed = append(w.Removed, i)
		}
	}
	g.mu.RUnlock()

	return sonnet.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. The receiver is reset first.
// Node indices in the payload must be dense and in order.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w graphJSON
	if err := sonnet.Unmarshal(data, &w); err != nil {
		return err
	}

	fresh := NewGraph(WithCapacity(len(w.Nodes), len(w.Edges)))
	for i, n := range w.Nodes {
		if n.Index != i {
			return fmt.Errorf("%w: index %d at position %d", ErrNodeNotFound, n.Index, i)
		}
		fresh.AddNode(n)
	}
	for _, e := range w.Edges {
		if _, err := fresh.AddEdge(e.From, e.To, e.Weight, e.Kind, e.RacewayID); err != nil {
			return err
		}
	}
	for _, i := range w.Removed {
		if err := fresh.RemoveNode(i); err != nil {
			return err
		}
	}

	g.mu.Lock()
	g.nodes, g.edges, g.adj, g.removed = fresh.nodes, fresh.edges, fresh.adj, fresh.removed
	g.dead, g.endpoints = fresh.dead, fresh.endpoints
	g.mu.Unlock()

	return nil
}
