// Package capacity owns raceway records: geometry, fill limit and current
// fill. It exposes fill mutation and utilization snapshots.
//
// The registry never enforces capacity on mutation. Whether a raceway may be
// selected for a cable is decided at selection time with Raceway.Fits;
// UpdateFill adds whatever it is told to add. Keeping fills consistent with
// accepted routes is the caller's discipline.
package capacity

import (
	"errors"

	"github.com/katalvlaran/raceroute/geom"
)

// Sentinel errors for registry operations.
var (
	// ErrEmptyRacewayID indicates a raceway definition without an ID.
	ErrEmptyRacewayID = errors.New("capacity: raceway ID is empty")

	// ErrDuplicateRaceway indicates AddRaceway was called twice for one ID.
	ErrDuplicateRaceway = errors.New("capacity: raceway already registered")

	// ErrRacewayNotFound indicates an operation referenced an unknown raceway.
	ErrRacewayNotFound = errors.New("capacity: raceway not found")

	// ErrBadCrossSection indicates a non-positive width or height.
	ErrBadCrossSection = errors.New("capacity: width and height must be positive")

	// ErrBadFillLimit indicates a fill limit outside (0,1].
	ErrBadFillLimit = errors.New("capacity: fill limit must be in (0,1]")
)

// DefaultFillLimit is the usable fraction of a raceway cross-section when
// neither the raceway nor the registry specifies one.
const DefaultFillLimit = 0.4

// Raceway is a fixed tray or conduit segment a cable may travel through.
//
// MaxFill is derived (Width*Height*FillLimit) and recomputed by the registry;
// values supplied by callers are ignored.
type Raceway struct {
	ID          string     `json:"id" yaml:"id"`
	Start       geom.Point `json:"start" yaml:"start"`
	End         geom.Point `json:"end" yaml:"end"`
	Width       float64    `json:"width" yaml:"width"`
	Height      float64    `json:"height" yaml:"height"`
	FillLimit   float64    `json:"fill_limit,omitempty" yaml:"fill_limit,omitempty"`
	CurrentFill float64    `json:"current_fill" yaml:"current_fill"`
	Group       string     `json:"group,omitempty" yaml:"group,omitempty"`
	MaxFill     float64    `json:"max_fill,omitempty" yaml:"max_fill,omitempty"`
}

// Segment returns the raceway span.
func (r Raceway) Segment() geom.Segment {
	return geom.Segment{Start: r.Start, End: r.End}
}

// Length returns the Euclidean length of the raceway.
func (r Raceway) Length() float64 { return geom.Distance(r.Start, r.End) }

// Fits reports whether a cable of the given cross-sectional area can still be
// pulled through r without exceeding MaxFill.
func (r Raceway) Fits(area float64) bool {
	return r.CurrentFill+area <= r.MaxFill
}

// AcceptsGroup reports whether a cable of the given group may use r.
// A raceway without a group tag accepts every cable.
func (r Raceway) AcceptsGroup(group string) bool {
	return r.Group == "" || r.Group == group
}

// Utilization is a point-in-time fill report for one raceway.
type Utilization struct {
	CurrentFill    float64 `json:"current_fill"`
	MaxFill        float64 `json:"max_fill"`
	UtilizationPct float64 `json:"utilization_pct"`
	Available      float64 `json:"available"`
}
