package worker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/shared"
	"github.com/katalvlaran/raceroute/topology"
)

// ErrStaleSnapshot indicates a Response computed against an older session
// state than the current one.
var ErrStaleSnapshot = errors.New("worker: stale snapshot")

// Session owns the mutable routing state of one design: raceway fills,
// shared field history and the cached base graph. Each accepted route
// advances the version; responses computed against an older version are
// rejected instead of silently double-booking capacity.
type Session struct {
	ID string

	mu       sync.Mutex
	version  uint64
	opts     route.Options
	registry *capacity.Registry
	history  *shared.History
	base     *topology.Base
}

// NewSession creates a session for raceways.
func NewSession(raceways []capacity.Raceway, opts route.Options) (*Session, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	reg, err := capacity.FromRaceways(opts.FillLimit, raceways)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       uuid.NewString(),
		version:  1,
		opts:     opts,
		registry: reg,
		history:  shared.NewHistory(),
	}, nil
}

// Version returns the current snapshot version.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// NewRequest snapshots the session into a self-contained Request.
func (s *Session) NewRequest(cable Cable, area float64) Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Request{
		RequestID:       uuid.NewString(),
		SnapshotVersion: s.version,
		Raceways:        s.registry.Raceways(),
		Options:         s.opts,
		BaseGraph:       s.base,
		Cable:           cable,
		CableArea:       area,
		SharedSegments:  s.history.Segments(),
	}
}

// Accept applies resp to the session. A response for an older version
// returns ErrStaleSnapshot and changes nothing. A successful route adds
// area to every raceway used, records its field legs and bumps the
// version; a failed route only refreshes the cached base graph.
func (s *Session) Accept(resp Response, area float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.SnapshotVersion != s.version {
		return fmt.Errorf("%w: response v%d, session v%d", ErrStaleSnapshot, resp.SnapshotVersion, s.version)
	}
	if resp.BaseGraph != nil {
		s.base = resp.BaseGraph
	}
	if !resp.Success {
		return nil
	}

	err := s.registry.UpdateFill(resp.RacewaysUsed, area)
	s.history.AppendRoute(resp.Result)
	s.version++
	return err
}

// Utilization reports current raceway utilization.
func (s *Session) Utilization() map[string]capacity.Utilization {
	return s.registry.Utilization()
}

// History returns the session's shared field history.
func (s *Session) History() *shared.History { return s.history }

// Raceways returns the current roster with fills.
func (s *Session) Raceways() []capacity.Raceway { return s.registry.Raceways() }
