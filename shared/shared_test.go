package shared_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/shared"
)

func field(a, b geom.Point) route.Segment {
	return route.Segment{Kind: route.KindField, Start: a, End: b, Length: geom.Manhattan(a, b)}
}

func TestFindCommonFieldRoutes_Identical(t *testing.T) {
	seg := field(geom.Point{0, 0, 0}, geom.Point{20, 0, 0})
	routes := []shared.CableRoute{
		{Cable: "C1", Group: "ctl", Segments: []route.Segment{seg}},
		{Cable: "C2", Group: "ctl", Segments: []route.Segment{
			{Kind: route.KindRaceway, Start: geom.Point{20, 0, 0}, End: geom.Point{20, 50, 0}, Length: 50, RacewayID: "T1"},
			seg,
		}},
	}
	diam := map[string]float64{"C1": 1.0, "C2": 0.5}

	aggs := shared.FindCommonFieldRoutes(routes, shared.AggregateOptions{Diameters: diam})
	require.Len(t, aggs, 1)
	a := aggs[0]
	assert.Equal(t, []string{"C1", "C2"}, a.Cables)
	assert.Equal(t, geom.Point{0, 0, 0}, a.Start)
	assert.Equal(t, geom.Point{20, 0, 0}, a.End)
	assert.InDelta(t, 20, a.Length, 1e-12)
	assert.Equal(t, "ctl", a.Group)
	assert.InDelta(t, math.Pi*0.25+math.Pi*0.0625, a.TotalArea, 1e-12)
}

func TestFindCommonFieldRoutes_GroupsAndTolerance(t *testing.T) {
	routes := []shared.CableRoute{
		{Cable: "A", Segments: []route.Segment{field(geom.Point{0, 0, 0}, geom.Point{20, 0, 0})}},
		{Cable: "B", Group: "power", Segments: []route.Segment{field(geom.Point{0, 0, 0}, geom.Point{20, 0, 0})}},
		// Offset 0.5 is inside the default tolerance of 1.
		{Cable: "C", Segments: []route.Segment{field(geom.Point{10, 0.5, 0}, geom.Point{30, 0.5, 0})}},
	}
	aggs := shared.FindCommonFieldRoutes(routes, shared.AggregateOptions{})
	require.Len(t, aggs, 1)
	assert.Equal(t, []string{"A", "C"}, aggs[0].Cables)
	assert.InDelta(t, 10, aggs[0].Length, 1e-12)
	assert.Zero(t, aggs[0].TotalArea)

	aggs = shared.FindCommonFieldRoutes(routes, shared.AggregateOptions{Tolerance: 0.1})
	assert.Empty(t, aggs)
}

func TestFindCommonFieldRoutes_ThreeWay(t *testing.T) {
	seg := field(geom.Point{0, 0, 0}, geom.Point{0, 0, 12})
	routes := []shared.CableRoute{
		{Cable: "Z", Segments: []route.Segment{seg}},
		{Cable: "X", Segments: []route.Segment{seg}},
		{Cable: "Y", Segments: []route.Segment{seg}},
	}
	aggs := shared.FindCommonFieldRoutes(routes, shared.AggregateOptions{})
	require.Len(t, aggs, 1)
	assert.Equal(t, []string{"X", "Y", "Z"}, aggs[0].Cables)
}

func TestHistory(t *testing.T) {
	h := shared.NewHistory(geom.Segment{Start: geom.Point{0, 0, 0}, End: geom.Point{1, 0, 0}})

	res := route.Result{Success: true, Segments: []route.Segment{
		field(geom.Point{1, 0, 0}, geom.Point{1, 5, 0}),
		{Kind: route.KindRaceway, Start: geom.Point{1, 5, 0}, End: geom.Point{9, 5, 0}, Length: 8, RacewayID: "T1"},
	}}
	h.AppendRoute(res)
	h.AppendRoute(route.Failure("nope"))
	assert.Equal(t, 2, h.Len())

	snap := h.Segments()
	snap[0] = geom.Segment{}
	assert.Equal(t, geom.Point{1, 0, 0}, h.Segments()[0].End)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Append(geom.Segment{})
			_ = h.Segments()
		}()
	}
	wg.Wait()
	assert.Equal(t, 12, h.Len())
}
