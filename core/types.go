// File: types.go
// Role: Node, Edge and Graph types, NodeKind/EdgeKind tags, sentinel errors
//       and the NewGraph constructor.

package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/raceroute/geom"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an index outside the node arena.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNodeRemoved indicates an operation on a tombstoned node.
	ErrNodeRemoved = errors.New("core: node has been removed")

	// ErrEdgeNotFound indicates an index outside the edge arena.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrNegativeWeight indicates a negative (or NaN) edge weight.
	ErrNegativeWeight = errors.New("core: edge weight must be non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrUnknownKind indicates an unrecognised node or edge kind label.
	ErrUnknownKind = errors.New("core: unknown kind")
)

// NodeKind tags what a node represents.
type NodeKind uint8

const (
	// NodeRacewayEndpoint is the start or end of a raceway.
	NodeRacewayEndpoint NodeKind = iota
	// NodeProjection is a point projected onto a raceway span.
	NodeProjection
	// NodeEphemeral is a per-request start or end point.
	NodeEphemeral
)

var nodeKindNames = [...]string{"raceway_endpoint", "projection", "ephemeral"}

// String returns the wire label of k.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("node_kind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(b []byte) error {
	for i, name := range nodeKindNames {
		if name == string(b) {
			*k = NodeKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: node kind %q", ErrUnknownKind, b)
}

// Side tells which end of its raceway an endpoint node sits on.
type Side uint8

const (
	// SideNone is used by projection and ephemeral nodes.
	SideNone Side = iota
	// SideStart marks a raceway's start point.
	SideStart
	// SideEnd marks a raceway's end point.
	SideEnd
)

// EdgeKind tags how an edge is travelled.
type EdgeKind uint8

const (
	// EdgeRaceway is travel inside a raceway.
	EdgeRaceway EdgeKind = iota
	// EdgeJunction is a near-zero hop between two touching raceways.
	EdgeJunction
	// EdgeField is open-space travel.
	EdgeField
)

var edgeKindNames = [...]string{"raceway", "junction", "field"}

// String returns the wire label of k.
func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return fmt.Sprintf("edge_kind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k EdgeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EdgeKind) UnmarshalText(b []byte) error {
	for i, name := range edgeKindNames {
		if name == string(b) {
			*k = EdgeKind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: edge kind %q", ErrUnknownKind, b)
}

// Node is a vertex of the routing graph.
//
// Index is assigned by the graph and equals the node's arena position.
// RacewayID is the owning raceway for endpoint and projection nodes and is
// empty for ephemeral nodes.
type Node struct {
	Index     int        `json:"index"`
	Point     geom.Point `json:"point"`
	Kind      NodeKind   `json:"kind"`
	RacewayID string     `json:"raceway_id,omitempty"`
	Side      Side       `json:"side,omitempty"`
}

// Edge is one directed entry of an undirected edge.
//
// The entries of one undirected edge live at indices 2k and 2k+1; Reverse
// maps between them.
type Edge struct {
	From      int      `json:"from"`
	To        int      `json:"to"`
	Weight    float64  `json:"weight"`
	Kind      EdgeKind `json:"kind"`
	RacewayID string   `json:"raceway_id,omitempty"`
}

// Reverse returns the index of the opposite directed entry of edge e.
func Reverse(e int) int { return e ^ 1 }

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the node and edge arenas. edges counts undirected
// edges.
func WithCapacity(nodes, edges int) GraphOption {
	return func(g *Graph) {
		g.nodes = make([]Node, 0, nodes)
		g.removed = make([]bool, 0, nodes)
		g.adj = make([][]int, 0, nodes)
		g.edges = make([]Edge, 0, 2*edges)
	}
}

// Graph is the arena-backed undirected routing graph.
type Graph struct {
	mu sync.RWMutex // guards everything below

	nodes   []Node
	edges   []Edge
	adj     [][]int // node index → outgoing edge indices
	removed []bool  // tombstones, parallel to nodes
	dead    int     // number of removed nodes

	// endpoints[racewayID] = {startIndex, endIndex}; -1 when absent
	endpoints map[string][2]int
}

// NewGraph creates an empty Graph.
// Complexity: O(1) plus any pre-sizing requested by options.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{endpoints: make(map[string][2]int)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
