// Package engine ties the routing pipeline together for one raceway roster.
//
// An Engine owns a private capacity registry built from the roster, the
// base graph (validated or rebuilt) and a copy of the shared field-segment
// history. CalculateRoute never modifies caller-supplied values.
package engine

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/compile"
	"github.com/katalvlaran/raceroute/dijkstra"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/manual"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/specialize"
	"github.com/katalvlaran/raceroute/topology"
)

// Engine routes cables against one roster snapshot.
type Engine struct {
	opts     route.Options
	registry *capacity.Registry
	base     *topology.Base
	shared   []geom.Segment
	rebuilt  bool
	logger   *zap.Logger
}

// New builds an Engine.
//
// base may be nil or stale; in both cases a new base graph is built from
// raceways. shared is copied. A nil logger disables logging.
func New(raceways []capacity.Raceway, opts route.Options, base *topology.Base, shared []geom.Segment, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	reg, err := capacity.FromRaceways(opts.FillLimit, raceways)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:     opts,
		registry: reg,
		base:     base,
		shared:   append([]geom.Segment(nil), shared...),
		logger:   logger,
	}
	if !base.Matches(reg.Raceways(), opts) {
		start := time.Now()
		if e.base, err = topology.Build(reg.Raceways(), opts); err != nil {
			return nil, err
		}
		e.rebuilt = true
		logger.Debug("base graph built",
			zap.String("fingerprint", e.base.Fingerprint),
			zap.Int("nodes", e.base.Graph.NodeCount()),
			zap.Int("edges", e.base.Graph.EdgeCount()),
			zap.Duration("took", time.Since(start)),
		)
	}
	return e, nil
}

// Base returns the base graph in use.
func (e *Engine) Base() *topology.Base { return e.base }

// Rebuilt reports whether New had to build the base graph.
func (e *Engine) Rebuilt() bool { return e.rebuilt }

// Registry returns the engine's private registry.
func (e *Engine) Registry() *capacity.Registry { return e.registry }

// Options returns the effective options.
func (e *Engine) Options() route.Options { return e.opts }

// CalculateRoute routes one cable. Explicit raceway lists and manual paths
// bypass the search; everything else is specialized, searched and
// compiled. Failures are reported in the Result, never as a panic.
func (e *Engine) CalculateRoute(req route.Request) route.Result {
	log := e.logger.With(zap.String("cable", req.Cable))
	raceways := e.registry.Raceways()

	if res, ok := manual.Route(req, raceways, e.opts); ok {
		log.Debug("manual route",
			zap.Bool("success", res.Success),
			zap.Bool("explicit", res.ExplicitRaceways),
			zap.String("message", res.Message),
			zap.Strings("warnings", res.Warnings),
		)
		return res
	}

	res, err := e.search(req, raceways)
	if err != nil {
		log.Warn("route failed", zap.Error(err))
		if errors.Is(err, dijkstra.ErrNoPath) {
			return route.Failure(route.NoPathMessage)
		}
		return route.Failure(err.Error())
	}
	log.Debug("route found",
		zap.Float64("total_length", res.TotalLength),
		zap.Float64("field_length", res.FieldLength),
		zap.Strings("raceways", res.RacewaysUsed),
	)
	return res
}

func (e *Engine) search(req route.Request, raceways []capacity.Raceway) (route.Result, error) {
	// 1) Specialize a clone of the base graph
	sp, err := specialize.Specialize(e.base, raceways, req, e.shared, e.opts)
	if err != nil {
		return route.Result{}, err
	}
	if len(sp.Removed) > 0 {
		e.logger.Debug("raceways pruned", zap.String("cable", req.Cable), zap.Strings("removed", sp.Removed))
	}

	// 2) Search
	dr, err := dijkstra.Dijkstra(sp.Graph, dijkstra.Source(sp.Start), dijkstra.Target(sp.End))
	if err != nil {
		return route.Result{}, err
	}
	path, err := dr.PathTo(sp.Graph, sp.End)
	if err != nil {
		return route.Result{}, err
	}

	// 3) Compile
	return compile.Compile(sp.Graph, path)
}

// Commit applies an accepted result to the engine's own state: area is
// added to every raceway used and the field legs join the shared history.
// It is meant for sequential batch routing inside one process.
func (e *Engine) Commit(res route.Result, area float64) error {
	if !res.Success {
		return nil
	}
	e.shared = append(e.shared, res.FieldSegments()...)
	return e.registry.UpdateFill(res.RacewaysUsed, area)
}
