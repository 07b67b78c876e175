package route

import (
	"errors"
	"fmt"

	"github.com/sugawarayuuta/sonnet"
)

// ErrBadOptions indicates an Options value that fails validation.
var ErrBadOptions = errors.New("route: invalid options")

// Defaults for Options. Lengths are in the design's linear unit (inches).
const (
	DefaultFillLimit          = 0.4
	DefaultProximityThreshold = 72.0
	DefaultFieldPenalty       = 3.0
	DefaultSharedPenalty      = 0.5
	DefaultMaxFieldEdge       = 1200.0
	DefaultMaxFieldNeighbors  = 8
	DefaultJunctionTolerance  = 0.1
	DefaultAggregateTolerance = 1.0
)

// Options tunes topology construction, specialization and aggregation.
type Options struct {
	// FillLimit is the default usable fraction of a raceway cross-section.
	FillLimit float64 `json:"fill_limit" yaml:"fill_limit"`
	// ProximityThreshold is the max Manhattan distance from a cable end to
	// its projection on a raceway for a mid-span entry.
	ProximityThreshold float64 `json:"proximity_threshold" yaml:"proximity_threshold"`
	// FieldPenalty multiplies field distance relative to raceway distance.
	FieldPenalty float64 `json:"field_penalty" yaml:"field_penalty"`
	// SharedPenalty multiplies the cost of field edges overlapping previously
	// routed field segments; below 1 it encourages bundling.
	SharedPenalty float64 `json:"shared_penalty" yaml:"shared_penalty"`
	// MaxFieldEdge is the longest base-graph field edge kept.
	MaxFieldEdge float64 `json:"max_field_edge" yaml:"max_field_edge"`
	// MaxFieldNeighbors is the number of field edges kept per base-graph node.
	MaxFieldNeighbors int `json:"max_field_neighbors" yaml:"max_field_neighbors"`
	// JunctionTolerance is the raceway touch distance, and the overlap
	// tolerance of routing-time shared-segment discounts.
	JunctionTolerance float64 `json:"junction_tolerance" yaml:"junction_tolerance"`
	// AggregateTolerance is the overlap tolerance of the batch
	// shared-segment report.
	AggregateTolerance float64 `json:"aggregate_tolerance" yaml:"aggregate_tolerance"`
	// AllowReverse lets manual chains and explicit lists run a raceway from
	// its end to its start. Off, every raceway is entered at its start.
	AllowReverse bool `json:"allow_reverse,omitempty" yaml:"allow_reverse"`
}

// DefaultOptions returns Options with every field at its default.
func DefaultOptions() Options {
	return Options{
		FillLimit:          DefaultFillLimit,
		ProximityThreshold: DefaultProximityThreshold,
		FieldPenalty:       DefaultFieldPenalty,
		SharedPenalty:      DefaultSharedPenalty,
		MaxFieldEdge:       DefaultMaxFieldEdge,
		MaxFieldNeighbors:  DefaultMaxFieldNeighbors,
		JunctionTolerance:  DefaultJunctionTolerance,
		AggregateTolerance: DefaultAggregateTolerance,
	}
}

// WithDefaults returns DefaultOptions for the zero Options. Otherwise it
// fills only the fields whose zero value is invalid (fill limit and the
// penalties); a zero threshold, cap, neighbour count or tolerance is kept.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if o.FillLimit == 0 {
		o.FillLimit = d.FillLimit
	}
	if o.FieldPenalty == 0 {
		o.FieldPenalty = d.FieldPenalty
	}
	if o.SharedPenalty == 0 {
		o.SharedPenalty = d.SharedPenalty
	}
	return o
}

// UnmarshalJSON decodes data over DefaultOptions, so keys missing from the
// object keep their defaults and keys present with 0 stay 0.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	v := plain(DefaultOptions())
	if err := sonnet.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Options(v)
	return nil
}

// Validate reports the first out-of-range field.
func (o Options) Validate() error {
	switch {
	case o.FillLimit <= 0 || o.FillLimit > 1:
		return fmt.Errorf("%w: fill_limit %g not in (0,1]", ErrBadOptions, o.FillLimit)
	case o.ProximityThreshold < 0:
		return fmt.Errorf("%w: proximity_threshold %g < 0", ErrBadOptions, o.ProximityThreshold)
	case o.FieldPenalty <= 0:
		return fmt.Errorf("%w: field_penalty %g <= 0", ErrBadOptions, o.FieldPenalty)
	case o.SharedPenalty <= 0:
		return fmt.Errorf("%w: shared_penalty %g <= 0", ErrBadOptions, o.SharedPenalty)
	case o.MaxFieldEdge < 0:
		return fmt.Errorf("%w: max_field_edge %g < 0", ErrBadOptions, o.MaxFieldEdge)
	case o.MaxFieldNeighbors < 0:
		return fmt.Errorf("%w: max_field_neighbors %d < 0", ErrBadOptions, o.MaxFieldNeighbors)
	case o.JunctionTolerance < 0:
		return fmt.Errorf("%w: junction_tolerance %g < 0", ErrBadOptions, o.JunctionTolerance)
	case o.AggregateTolerance < 0:
		return fmt.Errorf("%w: aggregate_tolerance %g < 0", ErrBadOptions, o.AggregateTolerance)
	}
	return nil
}
