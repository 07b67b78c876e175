// Package geom is the geometry kernel of raceroute: pure functions over 3D
// points and straight segments.
//
// Overview:
//
//   - Distance and Manhattan measure raceway and field lengths respectively.
//   - ProjectPointOnSegment clamps the projection parameter to [0,1]; a
//     zero-length segment projects everything onto its start.
//   - Orientation reports the single axis a segment runs along.
//   - SegmentsOverlap returns the shared sub-extent of two collinear,
//     axis-aligned segments.
//
// Axis alignment:
//
//	Field routing is orthogonal, so every field segment is expected to run
//	along exactly one of X, Y or Z. Orientation does not silently guess:
//	a segment that differs on more than one axis yields ErrNotAxisAligned.
//	The axis returned alongside that error is AxisZ, which is also the axis
//	reported for a zero-length segment.
//
// Units:
//
//	Coordinates are whatever linear unit the surrounding design tool uses
//	(typically inches). The package never converts units.
package geom
