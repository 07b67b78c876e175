package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/raceroute/core"
)

// queueItem pairs a node with its hop depth.
type queueItem struct {
	node  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g from start.
func BFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Alive(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}

	w := newWalker(g, o, start)
	w.enqueue(start, 0, -1)
	return w.res, w.loop()
}

func newWalker(g *core.Graph, o Options, start int) *walker {
	n := g.NodeCount()
	res := &Result{
		Start:      start,
		Order:      make([]int, 0, n),
		Depth:      make([]int, n),
		ParentEdge: make([]int, n),
	}
	for i := range res.Depth {
		res.Depth[i] = -1
		res.ParentEdge[i] = -1
	}
	return &walker{graph: g, opts: o, ctx: o.Ctx, res: res}
}

func (w *walker) enqueue(node, depth, via int) {
	w.res.Depth[node] = depth
	w.res.ParentEdge[node] = via
	w.queue = append(w.queue, queueItem{node: node, depth: depth})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.node)
		if err := w.opts.OnVisit(item.node, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.node, err)
		}
		if err := w.expand(item); err != nil {
			return err
		}
	}
	return nil
}

// expand enqueues every unseen, alive neighbor reachable over an allowed edge.
func (w *walker) expand(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	row, err := w.graph.Neighbors(item.node)
	if err != nil {
		return err
	}
	for _, ei := range row {
		e, err := w.graph.Edge(ei)
		if err != nil {
			return err
		}
		if w.res.Depth[e.To] >= 0 || !w.graph.Alive(e.To) || !w.opts.EdgeFilter(e) {
			continue
		}
		w.enqueue(e.To, next, ei)
	}
	return nil
}

// Components partitions the live nodes of g into groups connected under
// the options' edge filter. Groups are ordered by their smallest node and
// list nodes in visit order. MaxDepth and OnVisit are ignored.
func Components(g *core.Graph, opts ...Option) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	o.MaxDepth = 0
	o.OnVisit = func(int, int) error { return nil }

	seen := make([]bool, g.NodeCount())
	var out [][]int
	for v := range seen {
		if seen[v] || !g.Alive(v) {
			continue
		}
		w := newWalker(g, o, v)
		w.enqueue(v, 0, -1)
		if err := w.loop(); err != nil {
			return nil, err
		}
		for _, u := range w.res.Order {
			seen[u] = true
		}
		out = append(out, w.res.Order)
	}
	return out, nil
}
