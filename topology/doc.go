// Package topology builds the static, fill-independent part of the routing
// graph once per raceway roster.
//
// Construction (Build):
//
//  1. Every raceway contributes two NodeRacewayEndpoint nodes joined by an
//     EdgeRaceway weighted with the raceway's Euclidean length.
//  2. For every ordered pair of distinct raceways A, B, each endpoint of A is
//     projected onto B's span. A projection closer than JunctionTolerance is
//     a physical junction: a NodeProjection owned by B is added, joined to
//     A's endpoint by a near-zero EdgeJunction and to both of B's endpoints
//     by EdgeRaceway edges that split B's length.
//  3. Every remaining pair of nodes that is not already connected and not
//     owned by the same raceway becomes a field candidate if its Manhattan
//     distance is at most MaxFieldEdge. Each node keeps only its
//     MaxFieldNeighbors nearest candidates; kept pairs become EdgeField
//     edges weighted distance*FieldPenalty.
//
// The result depends only on raceway geometry and the topology options,
// never on fill or group tags. It is identified by a SHA3-256 Fingerprint
// and is meant to be cached (Cache) and cloned per request. A Base must be
// treated as immutable once built.
//
// Complexity: O(R² + V² log V) for R raceways and V nodes.
package topology
