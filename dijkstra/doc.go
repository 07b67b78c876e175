// Package dijkstra provides the shortest-path solver of the routing pipeline.
//
// Overview:
//
//   - Dijkstra computes minimum-cost paths from one source node over a
//     core.Graph with non-negative float64 weights.
//   - A binary min-heap always expands the next-closest node.
//   - With Target set, the search stops as soon as the target is popped:
//     the route planner needs exactly one path per request.
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (*Result, error)
//
//	  - opts:
//	      • Source(int):              required, the starting node index.
//	      • Target(int):              optional early-exit goal.
//	      • WithMaxDistance(float64): explore only distances ≤ the cap.
//
//	func (res *Result) PathTo(g *core.Graph, v int) ([]int, error)
//
//	  - returns the directed edge indices source→v, or ErrNoPath.
//
// Thread safety:
//
//   - Dijkstra only reads g. Several searches may run on one graph
//     concurrently as long as nobody mutates it meanwhile.
package dijkstra
