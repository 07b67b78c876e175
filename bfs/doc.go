// Package bfs provides breadth-first search over a core.Graph arena,
// returning hop distances, predecessor edges and visit order.
//
// What
//
//   - Explore live nodes in non-decreasing hop count from a start node.
//   - Edges can be filtered by kind or any other property (WithEdgeFilter),
//     e.g. to follow only raceway and junction edges.
//   - Components partitions every live node into connected groups under
//     the same filter.
//
// Determinism
//
//	Neighbors are expanded in adjacency (insertion) order and Components
//	seeds from ascending node indices, so results are reproducible.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start node is out of range or removed.
//   - ErrOptionViolation      for an invalid Option (e.g. negative MaxDepth).
//   - Wrapped OnVisit errors and context cancellation.
package bfs
