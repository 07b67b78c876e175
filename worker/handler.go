package worker

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/raceroute/engine"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/topology"
)

// Handler processes Requests. It keeps no routing state between messages;
// the optional cache only saves rebuilding identical base graphs.
type Handler struct {
	cache  *topology.Cache
	logger *zap.Logger
}

// NewHandler returns a Handler. cache and logger may be nil.
func NewHandler(cache *topology.Cache, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{cache: cache, logger: logger}
}

// Handle routes the single cable of req with a fresh engine.
func Handle(req Request) Response {
	return NewHandler(nil, nil).Handle(req)
}

// Handle routes the single cable of req with a fresh engine.
//
// Steps:
//  1. Pick a base graph: the request's own if it matches the roster,
//     else the cache's, else none (the engine builds one).
//  2. Build the engine and run exactly one CalculateRoute.
//  3. Report the result; a graph-search failure also sets Error.
func (h *Handler) Handle(req Request) Response {
	began := time.Now()
	resp := Response{RequestID: req.RequestID, SnapshotVersion: req.SnapshotVersion}
	log := h.logger.With(zap.String("request_id", req.RequestID), zap.String("cable", req.Cable.Name))

	// 1) Base graph
	base := req.BaseGraph
	supplied := base != nil
	if !base.Matches(req.Raceways, req.Options) && h.cache != nil {
		cached, hit, err := h.cache.Get(req.Raceways, req.Options)
		if err != nil {
			return h.fail(resp, "error", began, log, err)
		}
		if hit {
			baseCacheHits.Inc()
		} else {
			baseCacheMisses.Inc()
		}
		base = cached
	}

	// 2) Engine
	eng, err := engine.New(req.Raceways, req.Options, base, req.SharedSegments, log)
	if err != nil {
		return h.fail(resp, "error", began, log, err)
	}
	res := eng.CalculateRoute(req.Cable.Route(req.CableArea))

	// 3) Reply
	resp.Result = res
	if base != req.BaseGraph || eng.Rebuilt() {
		resp.BaseGraph = eng.Base()
	}
	outcome := "success"
	if !res.Success {
		outcome = "failure"
		if !res.Manual && !res.ExplicitRaceways {
			resp.Error = res.Message
		}
	} else {
		fieldLength.Observe(res.FieldLength)
	}
	requestsTotal.WithLabelValues(outcome).Inc()
	requestDuration.Observe(time.Since(began).Seconds())
	log.Info("request handled",
		zap.String("outcome", outcome),
		zap.Bool("base_supplied", supplied),
		zap.Bool("base_rebuilt", eng.Rebuilt()),
		zap.Float64("total_length", res.TotalLength),
		zap.Duration("took", time.Since(began)),
	)
	return resp
}

func (h *Handler) fail(resp Response, outcome string, began time.Time, log *zap.Logger, err error) Response {
	resp.Result = route.Failure(err.Error())
	resp.Error = err.Error()
	requestsTotal.WithLabelValues(outcome).Inc()
	requestDuration.Observe(time.Since(began).Seconds())
	log.Warn("request rejected", zap.Error(err))
	return resp
}
