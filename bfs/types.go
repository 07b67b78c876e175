package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/raceroute/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start node is absent or removed.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for one traversal.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// OnVisit is called when a node is visited; an error aborts the search.
	OnVisit func(node, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this hop count.
	MaxDepth int

	// EdgeFilter can skip edges by returning false.
	EdgeFilter func(e core.Edge) bool

	err error
}

// DefaultOptions returns background context, no depth limit, no filtering
// and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnVisit:    func(int, int) error { return nil },
		EdgeFilter: func(core.Edge) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the search to d hops (d == 0 means no limit).
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithEdgeFilter follows only edges for which fn returns true.
func WithEdgeFilter(fn func(e core.Edge) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.EdgeFilter = fn
		}
	}
}

// WithEdgeKinds follows only edges of the given kinds.
func WithEdgeKinds(kinds ...core.EdgeKind) Option {
	allowed := make(map[core.EdgeKind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return WithEdgeFilter(func(e core.Edge) bool { return allowed[e.Kind] })
}

// Result holds the outcome of a traversal.
//
// Depth[v] is -1 and ParentEdge[v] is -1 for unvisited nodes; the start has
// depth 0 and no parent edge.
type Result struct {
	Start      int
	Order      []int
	Depth      []int
	ParentEdge []int
}

// Visited reports whether v was reached.
func (r *Result) Visited(v int) bool {
	return v >= 0 && v < len(r.Depth) && r.Depth[v] >= 0
}

// PathTo returns the node sequence from the start to dest.
func (r *Result) PathTo(g *core.Graph, dest int) ([]int, error) {
	if !r.Visited(dest) {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	path := []int{dest}
	for cur := dest; cur != r.Start; {
		e, err := g.Edge(r.ParentEdge[cur])
		if err != nil {
			return nil, err
		}
		cur = e.From
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
