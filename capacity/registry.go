package capacity

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry stores raceway records for one session.
//
// All methods are safe for concurrent use. Records are never deleted.
type Registry struct {
	mu               sync.RWMutex
	defaultFillLimit float64
	raceways         map[string]*Raceway
}

// NewRegistry returns an empty registry. A fillLimit outside (0,1] falls back
// to DefaultFillLimit.
func NewRegistry(fillLimit float64) *Registry {
	if fillLimit <= 0 || fillLimit > 1 {
		fillLimit = DefaultFillLimit
	}
	return &Registry{
		defaultFillLimit: fillLimit,
		raceways:         make(map[string]*Raceway),
	}
}

// FromRaceways builds a registry seeded with the given roster. It stops at
// the first invalid definition.
func FromRaceways(fillLimit float64, roster []Raceway) (*Registry, error) {
	reg := NewRegistry(fillLimit)
	for _, def := range roster {
		if _, err := reg.AddRaceway(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// AddRaceway stores an owned copy of def with MaxFill computed from the
// cross-section and fill limit. The stored record is returned.
func (r *Registry) AddRaceway(def Raceway) (Raceway, error) {
	if def.ID == "" {
		return Raceway{}, ErrEmptyRacewayID
	}
	if def.Width <= 0 || def.Height <= 0 {
		return Raceway{}, fmt.Errorf("%w: %s", ErrBadCrossSection, def.ID)
	}
	if def.FillLimit == 0 {
		def.FillLimit = r.defaultFillLimit
	}
	if def.FillLimit < 0 || def.FillLimit > 1 {
		return Raceway{}, fmt.Errorf("%w: %s has %g", ErrBadFillLimit, def.ID, def.FillLimit)
	}
	def.MaxFill = def.Width * def.Height * def.FillLimit

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.raceways[def.ID]; ok {
		return Raceway{}, fmt.Errorf("%w: %s", ErrDuplicateRaceway, def.ID)
	}
	owned := def
	r.raceways[def.ID] = &owned

	return owned, nil
}

// Get returns a copy of the named raceway.
func (r *Registry) Get(id string) (Raceway, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rw, ok := r.raceways[id]
	if !ok {
		return Raceway{}, false
	}
	return *rw, true
}

// Len returns the number of registered raceways.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.raceways)
}

// Raceways returns copies of every record sorted by ID.
func (r *Registry) Raceways() []Raceway {
	r.mu.RLock()
	out := make([]Raceway, 0, len(r.raceways))
	for _, rw := range r.raceways {
		out = append(out, *rw)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Fits reports whether area still fits in the named raceway. Unknown IDs
// never fit.
func (r *Registry) Fits(id string, area float64) bool {
	rw, ok := r.Get(id)
	return ok && rw.Fits(area)
}

// UpdateFill adds area to the current fill of every named raceway.
//
// No capacity check is made. Unknown IDs are skipped; each one is reported
// in the returned error, which wraps ErrRacewayNotFound.
func (r *Registry) UpdateFill(ids []string, area float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, id := range ids {
		rw, ok := r.raceways[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrRacewayNotFound, id))
			continue
		}
		rw.CurrentFill += area
	}

	return errors.Join(errs...)
}

// Utilization returns a fill report per raceway. It is intended for
// reporting only and reflects the registry at the time of the call.
func (r *Registry) Utilization() map[string]Utilization {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Utilization, len(r.raceways))
	for id, rw := range r.raceways {
		u := Utilization{
			CurrentFill: rw.CurrentFill,
			MaxFill:     rw.MaxFill,
			Available:   rw.MaxFill - rw.CurrentFill,
		}
		if rw.MaxFill > 0 {
			u.UtilizationPct = rw.CurrentFill / rw.MaxFill * 100
		}
		out[id] = u
	}

	return out
}
