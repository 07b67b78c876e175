// Package core provides the arena-backed routing graph shared by every stage
// of the raceroute pipeline.
//
// The Graph G = (V,E) is stored in contiguous slices:
//
//   - nodes:   []Node, addressed by index (Node.Index)
//   - edges:   []Edge, every undirected edge stored as two directed entries
//     at indices 2k (forward) and 2k+1 (reverse)
//   - adj:     [][]int, per-node list of outgoing edge indices
//   - removed: []bool tombstones; removed nodes stay in the arena so indices
//     remain stable, but algorithms must skip them (Alive)
//
// Why an arena?
//
//   - The base topology is built once per raceway roster and reused across
//     requests. Every request clones it and then prunes/extends the clone.
//     With an arena, Clone is a handful of slice copies instead of a deep
//     copy of nested maps.
//   - Node identity is an integer index plus an explicit NodeKind and owning
//     raceway ID. No information is encoded in, or recovered from, strings.
//
// Node kinds:
//
//	NodeRacewayEndpoint – start or end of a raceway (Side tells which)
//	NodeProjection      – a point projected onto a raceway span
//	NodeEphemeral       – a per-request start or end point
//
// Edge kinds:
//
//	EdgeRaceway  – travel inside a raceway (Euclidean length)
//	EdgeJunction – near-zero hop between touching raceways
//	EdgeField    – open-space travel (Manhattan length times a penalty)
//
// Clone isolation:
//
//	Adjacency rows of a clone are clipped (cap == len), so appending an edge
//	to a clone always reallocates the row and never writes into the backing
//	array of the graph it was cloned from.
//
// Concurrency:
//
//	A single sync.RWMutex guards all slices. Concurrent readers of a shared
//	base graph (Clone, Neighbors, Node) never block each other.
//
// Errors:
//
//	ErrNodeNotFound   – index out of range.
//	ErrNodeRemoved    – operation on a tombstoned node.
//	ErrNegativeWeight – AddEdge with a negative or NaN weight.
//	ErrLoopNotAllowed – AddEdge with from == to.
package core
