package geom

import (
	"errors"
	"fmt"
)

// ErrNotAxisAligned indicates a segment that changes along more than one axis.
var ErrNotAxisAligned = errors.New("geom: segment is not axis-aligned")

// Epsilon is the absolute tolerance used when comparing coordinates for equality.
const Epsilon = 1e-9

// Point is a position in 3D space. It marshals to JSON as [x, y, z].
type Point [3]float64

// Axis names one of the three coordinate axes.
type Axis int

const (
	// AxisX is the first coordinate.
	AxisX Axis = iota
	// AxisY is the second coordinate.
	AxisY
	// AxisZ is the third coordinate.
	AxisZ
)

// Axes lists the axes in the fixed order used for field-leg decomposition.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Segment is a straight line piece between two points.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Scale returns p*k.
func (p Point) Scale(k float64) Point {
	return Point{p[0] * k, p[1] * k, p[2] * k}
}

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}

// With returns a copy of p whose coordinate on axis a is v.
func (p Point) With(a Axis, v float64) Point {
	p[a] = v
	return p
}

// ApproxEqual reports whether p and q match on every axis within tol.
func (p Point) ApproxEqual(q Point, tol float64) bool {
	for _, a := range Axes {
		if abs(p[a]-q[a]) > tol {
			return false
		}
	}
	return true
}

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return Distance(s.Start, s.End) }

// Reversed returns s traversed from End to Start.
func (s Segment) Reversed() Segment { return Segment{Start: s.End, End: s.Start} }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
