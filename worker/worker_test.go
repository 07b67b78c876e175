package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/topology"
	"github.com/katalvlaran/raceroute/worker"
)

const wireRequest = `{
  "raceways": [{"id": "T1", "start": [0,0,0], "end": [40,0,0], "width": 12, "height": 4, "current_fill": 0}],
  "options": {"fill_limit": 0.4, "proximity_threshold": 72, "field_penalty": 3, "shared_penalty": 0.5,
              "max_field_edge": 1200, "max_field_neighbors": 8},
  "base_graph": null,
  "cable": {"name": "C1", "start": [0,0,0], "end": [40,5,0]},
  "cable_area": 1
}`

func roster() []capacity.Raceway {
	return []capacity.Raceway{
		{ID: "T1", Start: geom.Point{0, 0, 0}, End: geom.Point{40, 0, 0}, Width: 12, Height: 4},
		{ID: "T2", Start: geom.Point{40, 0, 0}, End: geom.Point{40, 30, 0}, Width: 12, Height: 4},
	}
}

func TestWire_DecodeHandleEncode(t *testing.T) {
	req, err := worker.DecodeRequest([]byte(wireRequest))
	require.NoError(t, err)
	assert.Equal(t, "C1", req.Cable.Name)
	assert.Nil(t, req.BaseGraph)
	require.Len(t, req.Raceways, 1)

	resp := worker.Handle(req)
	require.True(t, resp.Success, resp.Message)
	assert.Empty(t, resp.Error)
	assert.InDelta(t, 45, resp.TotalLength, 1e-9)
	assert.Equal(t, []string{"T1"}, resp.RacewaysUsed)
	require.NotNil(t, resp.BaseGraph, "freshly built base is returned")

	data, err := worker.EncodeResponse(resp)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, true, m["success"])
	assert.Equal(t, []interface{}{"T1"}, m["tray_segments"])
	assert.Contains(t, m, "route_segments")
	assert.Contains(t, m, "base_graph")
	assert.NotContains(t, m, "error")
}

func TestWire_ExplicitZeroOptions(t *testing.T) {
	data := strings.Replace(wireRequest, `"proximity_threshold": 72`, `"proximity_threshold": 0`, 1)
	req, err := worker.DecodeRequest([]byte(data))
	require.NoError(t, err)
	assert.Zero(t, req.Options.ProximityThreshold)
	assert.InDelta(t, route.DefaultJunctionTolerance, req.Options.JunctionTolerance, 0)

	resp := worker.Handle(req)
	require.True(t, resp.Success, resp.Message)
	assert.InDelta(t, 45, resp.TotalLength, 1e-9)

	// No options object at all means defaults.
	req, err = worker.DecodeRequest([]byte(`{"raceways": [], "cable": {"start": [0,0,0], "end": [1,0,0]}, "cable_area": 1}`))
	require.NoError(t, err)
	assert.Equal(t, route.DefaultOptions(), req.Options.WithDefaults())
}

func TestWire_Stream(t *testing.T) {
	count := func(in string) int {
		dec := worker.NewDecoder(strings.NewReader(in))
		var n int
		for {
			_, err := dec.Next()
			if errors.Is(err, io.EOF) {
				return n
			}
			require.NoError(t, err)
			n++
		}
	}
	assert.Equal(t, 2, count(wireRequest+"\n"+wireRequest))
	assert.Equal(t, 1, count(wireRequest+"\n"))
	assert.Equal(t, 2, count(" \r\n"+wireRequest+"\t"+wireRequest+"\n\n  "))
	assert.Equal(t, 0, count(""))
	assert.Equal(t, 0, count("\n \n"))

	// Braces inside strings do not end the value early.
	dec := worker.NewDecoder(strings.NewReader(`{"request_id": "a}\\\"{b"}` + "\n"))
	req, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, `a}\"{b`, req.RequestID)
	_, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)

	dec = worker.NewDecoder(strings.NewReader(wireRequest[:len(wireRequest)/2]))
	_, err = dec.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var sb strings.Builder
	enc := worker.NewEncoder(&sb)
	require.NoError(t, enc.Write(worker.Response{Result: route.Failure(route.NoPathMessage), Error: route.NoPathMessage}))
	assert.Contains(t, sb.String(), `"error":"No valid path could be found."`)
}

func TestHandle_Outcomes(t *testing.T) {
	rs := roster()
	base, err := topology.Build(rs, route.DefaultOptions())
	require.NoError(t, err)

	// Matching base is reused and not echoed back.
	resp := worker.Handle(worker.Request{
		Raceways: rs, Options: route.DefaultOptions(), BaseGraph: base,
		Cable: worker.Cable{Start: geom.Point{0, 0, 0}, End: geom.Point{40, 30, 0}}, CableArea: 1,
	})
	require.True(t, resp.Success, resp.Message)
	assert.Nil(t, resp.BaseGraph)
	assert.InDelta(t, 70, resp.TotalLength, 1e-9)

	// Manual failures carry a message, not an error.
	resp = worker.Handle(worker.Request{
		Raceways: rs, Options: route.DefaultOptions(),
		Cable: worker.Cable{Start: geom.Point{0, 0, 0}, End: geom.Point{40, 30, 0}, ManualPath: "T2>T9"}, CableArea: 1,
	})
	assert.False(t, resp.Success)
	assert.True(t, resp.Manual)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, resp.Error)

	// Invalid input is an error response.
	resp = worker.Handle(worker.Request{
		Raceways: []capacity.Raceway{{ID: "BAD", Width: 0, Height: 1}}, Options: route.DefaultOptions(),
	})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandler_UsesCache(t *testing.T) {
	cache, err := topology.NewCache(4)
	require.NoError(t, err)
	h := worker.NewHandler(cache, zaptest.NewLogger(t))

	req := worker.Request{
		Raceways: roster(), Options: route.DefaultOptions(),
		Cable: worker.Cable{Start: geom.Point{0, 0, 0}, End: geom.Point{40, 30, 0}}, CableArea: 1,
	}
	first := h.Handle(req)
	second := h.Handle(req)
	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, 1, cache.Len())
	assert.Same(t, first.BaseGraph, second.BaseGraph)
}

type PoolSuite struct {
	suite.Suite
	pool *worker.Pool
}

func (s *PoolSuite) SetupTest() {
	s.pool = worker.NewPool(3, 4, worker.NewHandler(nil, nil), zaptest.NewLogger(s.T()))
}

func (s *PoolSuite) TearDownTest() { s.pool.Close() }

func (s *PoolSuite) TestConcurrentSubmit() {
	var wg sync.WaitGroup
	ids := make([]string, 12)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := s.pool.Submit(context.Background(), worker.Request{
				Raceways: roster(), Options: route.DefaultOptions(),
				Cable: worker.Cable{Start: geom.Point{0, 0, 0}, End: geom.Point{40, float64(i), 0}}, CableArea: 1,
			})
			s.NoError(err)
			s.True(resp.Success)
			ids[i] = resp.RequestID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	for _, id := range ids {
		s.NotEmpty(id)
		seen[id] = struct{}{}
	}
	s.Len(seen, len(ids))
}

func (s *PoolSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.pool.Submit(ctx, worker.Request{})
	s.ErrorIs(err, context.Canceled)
}

func (s *PoolSuite) TestClosed() {
	s.pool.Close()
	_, err := s.pool.Submit(context.Background(), worker.Request{})
	s.ErrorIs(err, worker.ErrPoolClosed)
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolSuite))
}

func TestSession_StaleSnapshot(t *testing.T) {
	sess, err := worker.NewSession(roster(), route.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, uint64(1), sess.Version())

	cable := worker.Cable{Name: "C1", Start: geom.Point{0, 0, 0}, End: geom.Point{40, 30, 5}}
	r1 := sess.NewRequest(cable, 2)
	r2 := sess.NewRequest(cable, 2)
	assert.NotEqual(t, r1.RequestID, r2.RequestID)

	resp1 := worker.Handle(r1)
	resp2 := worker.Handle(r2)
	require.True(t, resp1.Success)
	require.True(t, resp2.Success)

	require.NoError(t, sess.Accept(resp1, 2))
	assert.Equal(t, uint64(2), sess.Version())
	require.ErrorIs(t, sess.Accept(resp2, 2), worker.ErrStaleSnapshot)

	util := sess.Utilization()
	for _, id := range resp1.RacewaysUsed {
		assert.InDelta(t, 2, util[id].CurrentFill, 1e-12)
	}
	assert.Positive(t, sess.History().Len())

	// The next request sees the new fills, history and cached base.
	r3 := sess.NewRequest(cable, 2)
	assert.Equal(t, uint64(2), r3.SnapshotVersion)
	assert.NotEmpty(t, r3.SharedSegments)
	assert.NotNil(t, r3.BaseGraph)
	resp3 := worker.Handle(r3)
	require.True(t, resp3.Success)
	assert.Nil(t, resp3.BaseGraph)
	require.NoError(t, sess.Accept(resp3, 2))
}
