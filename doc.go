// Package raceroute plans cable routes through a building's raceways
// (cable trays and conduits), respecting how full each raceway may get and
// which cable groups it is reserved for.
//
// 🚀 What is raceroute?
//
//	A routing planner that turns a raceway roster and a cable request into
//	an ordered list of axis-aligned segments, each tagged with the raceway
//	it runs through or marked as "field" (unsupported run outside any tray):
//		• Base topology: endpoints, junctions and candidate field hops,
//		  built once per roster and cached by fingerprint
//		• Per-request specialization: prune full or reserved raceways,
//		  attach the cable's start and end
//		• Search: Dijkstra over the arena graph
//		• Compilation: axis decomposition, backtrack removal, merging
//		• Manual routes: explicit raceway lists, raceway chains, waypoints
//		• Shared field runs: cables whose field segments coincide
//
// ✨ Packages
//
//	geom/       — points, axes, segment projection and overlap
//	capacity/   — Raceway, fill limits, group reservations, utilization
//	core/       — arena graph with stable node and edge indices
//	bfs/        — hop-count traversal, raceway islands
//	dijkstra/   — weighted shortest paths over core.Graph
//	topology/   — base graph build, fingerprint, LRU cache
//	specialize/ — per-request clone, pruning and endpoint attachment
//	compile/    — edge path → segments, validation
//	manual/     — manual chains, explicit lists, waypoint parsing
//	shared/     — field history and common field route aggregation
//	engine/     — CalculateRoute orchestration
//	worker/     — wire format, handler, pool, sessions, metrics
//	config/     — YAML configuration and logger setup
//	cmd/raceroute — command line front end
//
// Quick example:
//
//	    T1 ════════╗
//	               ║ T2
//	    S ┄┄┄┄┄┄┄┄ ╚════ E
//
//	A cable from S to E can cross the field directly (dotted) or climb to
//	T1 and follow T1 and T2 down to E. Field length costs FieldPenalty per
//	unit, so the planner takes the raceways whenever the detour through
//	them is cheaper than the penalized field run.
//
// Install the command:
//
//	go install github.com/katalvlaran/raceroute/cmd/raceroute@latest
package raceroute
