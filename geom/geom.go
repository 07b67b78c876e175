package geom

import (
	"gonum.org/v1/gonum/floats"
)

// Distance returns the Euclidean (L2) distance between a and b.
func Distance(a, b Point) float64 {
	return floats.Distance(a[:], b[:], 2)
}

// Manhattan returns the L1 distance between a and b, the length of the
// shortest orthogonal route between them.
func Manhattan(a, b Point) float64 {
	return floats.Distance(a[:], b[:], 1)
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).Scale(t))
}

// ProjectPointOnSegment returns the point of segment [a,b] closest to p.
//
// The projection parameter is clamped to [0,1], so the result never leaves
// the segment. A degenerate segment (a == b) returns a.
//
// Complexity: O(1).
func ProjectPointOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}

	return Lerp(a, b, t)
}

// Orientation returns the axis along which s runs.
//
// Exactly one coordinate may differ between Start and End (within Epsilon).
// When none differ the segment is degenerate and AxisZ is returned with a nil
// error. When more than one differs, AxisZ is returned with ErrNotAxisAligned.
func Orientation(s Segment) (Axis, error) {
	found := -1
	for _, a := range Axes {
		if abs(s.End[a]-s.Start[a]) <= Epsilon {
			continue
		}
		if found >= 0 {
			return AxisZ, ErrNotAxisAligned
		}
		found = int(a)
	}
	if found < 0 {
		return AxisZ, nil
	}

	return Axis(found), nil
}

// IsAxisAligned reports whether s changes along at most one axis.
func IsAxisAligned(s Segment) bool {
	_, err := Orientation(s)
	return err == nil
}

// SegmentsOverlap returns the sub-segment shared by a and b.
//
// Both segments must be axis-aligned along the same axis, and their two
// transverse coordinates must agree within tol. The overlap must have a
// positive extent on the shared axis. The returned segment runs from the
// low to the high end of the overlap, with transverse coordinates taken
// from a.
//
// Complexity: O(1).
func SegmentsOverlap(a, b Segment, tol float64) (Segment, bool) {
	axA, err := Orientation(a)
	if err != nil || a.Length() <= Epsilon {
		return Segment{}, false
	}
	axB, err := Orientation(b)
	if err != nil || b.Length() <= Epsilon || axA != axB {
		return Segment{}, false
	}

	// Transverse coordinates must coincide.
	for _, t := range Axes {
		if t == axA {
			continue
		}
		if abs(a.Start[t]-b.Start[t]) > tol {
			return Segment{}, false
		}
	}

	loA, hiA := minMax(a.Start[axA], a.End[axA])
	loB, hiB := minMax(b.Start[axA], b.End[axA])
	lo := max(loA, loB)
	hi := min(hiA, hiB)
	if hi-lo <= Epsilon {
		return Segment{}, false
	}

	return Segment{
		Start: a.Start.With(axA, lo),
		End:   a.Start.With(axA, hi),
	}, true
}

func minMax(x, y float64) (float64, float64) {
	if x <= y {
		return x, y
	}
	return y, x
}
