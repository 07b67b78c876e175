// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on the routing graph.
//
// Complexity:
//
//	– Time:  O((V + E) log V)
//	– Space: O(V + E)
//	   • O(V) for the distance and predecessor-edge arrays.
//	   • O(E) in the priority queue in the worst case (lazy decrease-key).
//
// Options:
//
//	– Source:          index of the starting node (must be alive).
//	– Target:          optional index of the goal node; search stops once it is popped.
//	– WithMaxDistance: optional cap on distances to explore.
//
// Errors (sentinel):
//
//	– ErrNilGraph        if the provided graph pointer is nil.
//	– ErrNoSource        if no Source option was given.
//	– ErrVertexNotFound  if the source or target is out of range or removed.
//	– ErrNegativeWeight  if a negative edge weight is met during relaxation.
//	– ErrBadMaxDistance  if MaxDistance < 0 or NaN.
//	– ErrNoPath          from Result.PathTo for an unreachable node.
package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNoSource indicates that the Source option was not provided.
	ErrNoSource = errors.New("dijkstra: source node not set")

	// ErrVertexNotFound indicates that the source or target node does not
	// exist or has been removed.
	ErrVertexNotFound = errors.New("dijkstra: node not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrNoPath indicates the requested node was not reached.
	ErrNoPath = errors.New("dijkstra: no path to node")
)

// noNode marks an unset Source/Target.
const noNode = -1

// Options configures the behavior of the Dijkstra algorithm.
//
// Source      – starting node index (must be alive).
// Target      – goal node index, or -1 to settle every reachable node.
// MaxDistance – distances beyond this are not explored. Default +Inf.
type Options struct {
	Source      int
	Target      int
	MaxDistance float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting node.
func Source(i int) Option {
	return func(o *Options) {
		o.Source = i
	}
}

// Target sets the goal node. The search stops as soon as the goal is
// popped from the heap; distances of unsettled nodes are then upper bounds.
func Target(i int) Option {
	return func(o *Options) {
		o.Target = i
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Dijkstra rejects a negative or NaN value with ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with no source, no target and no distance cap.
func DefaultOptions() Options {
	return Options{
		Source:      noNode,
		Target:      noNode,
		MaxDistance: math.Inf(1),
	}
}

// Result holds distances and predecessor edges of one run.
//
// Dist[v] is +Inf for unreached nodes. PrevEdge[v] is the index of the
// directed edge used to reach v, or -1 for the source and unreached nodes.
type Result struct {
	Source   int
	Dist     []float64
	PrevEdge []int
}
