package manual_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/manual"
	"github.com/katalvlaran/raceroute/route"
)

func roster(t *testing.T, rs ...capacity.Raceway) []capacity.Raceway {
	t.Helper()
	reg, err := capacity.FromRaceways(capacity.DefaultFillLimit, rs)
	require.NoError(t, err)
	return reg.Raceways()
}

// elbow: T1 along X, T2 along Y, meeting at (20,0,0).
func elbow(t *testing.T) []capacity.Raceway {
	return roster(t,
		capacity.Raceway{ID: "T1", Start: geom.Point{0, 0, 0}, End: geom.Point{20, 0, 0}, Width: 6, Height: 4},
		capacity.Raceway{ID: "T2", Start: geom.Point{20, 0, 0}, End: geom.Point{20, 30, 0}, Width: 6, Height: 4},
	)
}

func TestParseChain(t *testing.T) {
	assert.Equal(t, []string{"T1", "T2", "T3"}, manual.ParseChain(" T1>T2 >  T3 "))
	assert.True(t, manual.IsChain("T1>T2"))
	assert.False(t, manual.IsChain("1,2,3;4,5,6"))
}

func TestChain_Success(t *testing.T) {
	req := route.Request{Start: geom.Point{0, -5, 0}, End: geom.Point{22, 30, 0}, Area: 1, ManualPath: "T1>T2"}
	res := manual.Chain(req, elbow(t), route.DefaultOptions())

	require.True(t, res.Success, res.Message)
	assert.True(t, res.Manual)
	assert.False(t, res.ExplicitRaceways)
	assert.Equal(t, []string{"T1", "T2"}, res.RacewaysUsed)
	// 5 lead-in, 20 + 30 raceway, 2 lead-out.
	assert.InDelta(t, 57, res.TotalLength, 1e-9)
	assert.InDelta(t, 7, res.FieldLength, 1e-9)
}

func TestChain_ReversedTraversal(t *testing.T) {
	req := route.Request{Start: geom.Point{20, 35, 0}, End: geom.Point{0, 0, 0}, Area: 1, ManualPath: "T2 > T1"}
	res := manual.Chain(req, elbow(t), route.DefaultOptions())
	assert.False(t, res.Success)
	assert.True(t, res.Manual)
	assert.Contains(t, res.Message, "mismatch")

	opts := route.DefaultOptions()
	opts.AllowReverse = true
	res = manual.Chain(req, elbow(t), opts)
	require.True(t, res.Success, res.Message)
	assert.InDelta(t, 55, res.TotalLength, 1e-9)
	assert.Equal(t, geom.Point{20, 30, 0}, res.Segments[1].Start)
}

// T2 meets T1's end with its own end, 50 units from its start.
func TestChain_EndToEndIsMismatch(t *testing.T) {
	rs := roster(t,
		capacity.Raceway{ID: "T1", Start: geom.Point{0, 0, 0}, End: geom.Point{20, 0, 0}, Width: 6, Height: 4},
		capacity.Raceway{ID: "T2", Start: geom.Point{20, 50, 0}, End: geom.Point{20, 0, 0}, Width: 6, Height: 4},
	)
	req := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{20, 50, 0}, Area: 1, ManualPath: "T1>T2"}
	res := manual.Chain(req, rs, route.DefaultOptions())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "mismatch")
	assert.Empty(t, res.RacewaysUsed)

	req.ManualPath, req.RacewayIDs = "", []string{"T1", "T2"}
	res, ok := manual.Route(req, rs, route.DefaultOptions())
	require.True(t, ok)
	assert.False(t, res.Success)
	assert.True(t, res.ExplicitRaceways)
	assert.Contains(t, res.Message, "mismatch")
}

func TestChain_Mismatch(t *testing.T) {
	rs := roster(t,
		capacity.Raceway{ID: "T1", Start: geom.Point{0, 0, 0}, End: geom.Point{20, 0, 0}, Width: 6, Height: 4},
		capacity.Raceway{ID: "T2", Start: geom.Point{70, 0, 0}, End: geom.Point{90, 0, 0}, Width: 6, Height: 4},
	)
	req := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{90, 0, 0}, Area: 1, ManualPath: "T1>T2"}
	res := manual.Chain(req, rs, route.DefaultOptions())

	assert.False(t, res.Success)
	assert.True(t, res.Manual)
	assert.Contains(t, res.Message, "mismatch")
	assert.Empty(t, res.Segments)
}

func TestChain_Violations(t *testing.T) {
	rs := roster(t,
		capacity.Raceway{ID: "T1", Start: geom.Point{0, 0, 0}, End: geom.Point{20, 0, 0}, Width: 6, Height: 4, Group: "power"},
		capacity.Raceway{ID: "T2", Start: geom.Point{20, 0, 0}, End: geom.Point{40, 0, 0}, Width: 1, Height: 1},
	)
	base := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{40, 0, 0}, Area: 1}

	req := base
	req.ManualPath = "T9"
	res := manual.Chain(req, rs, route.DefaultOptions())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "T9")

	req = base
	req.ManualPath, req.Group = "T1", "control"
	res = manual.Chain(req, rs, route.DefaultOptions())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "group")

	// 1*1*0.4 < 1
	req = base
	req.ManualPath, req.Group = "T1>T2", "power"
	res = manual.Chain(req, rs, route.DefaultOptions())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "capacity")
}

func TestExplicit_SkipsUnknown(t *testing.T) {
	req := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{20, 30, 0}, Area: 1, RacewayIDs: []string{"T1", "NOPE", "T2"}}
	res, ok := manual.Route(req, elbow(t), route.DefaultOptions())
	require.True(t, ok)

	require.True(t, res.Success, res.Message)
	assert.True(t, res.ExplicitRaceways)
	assert.False(t, res.Manual)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "NOPE")
	assert.InDelta(t, 50, res.TotalLength, 1e-9)
	assert.Zero(t, res.FieldLength)

	req.RacewayIDs = []string{"X", "Y"}
	res, _ = manual.Route(req, elbow(t), route.DefaultOptions())
	assert.False(t, res.Success)
	assert.Len(t, res.Warnings, 2)
}

func TestWaypoints(t *testing.T) {
	req := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{10, 10, 5}, ManualPath: "5,0,0; 5,10,0;"}
	res, ok := manual.Route(req, nil, route.DefaultOptions())
	require.True(t, ok)

	require.True(t, res.Success, res.Message)
	assert.True(t, res.Manual)
	assert.InDelta(t, 25, res.TotalLength, 1e-9)
	assert.InDelta(t, res.TotalLength, res.FieldLength, 1e-12)
	for _, s := range res.Segments {
		assert.True(t, geom.IsAxisAligned(s.Span()))
	}

	_, ok = manual.Route(route.Request{ManualPath: "  "}, nil, route.DefaultOptions())
	assert.False(t, ok)
}

func TestWaypoints_Malformed(t *testing.T) {
	for _, path := range []string{"1,2", "1,2,3;4,5", "1,2,3,4", "1,,3"} {
		req := route.Request{Start: geom.Point{0, 0, 0}, End: geom.Point{1, 1, 1}, ManualPath: path}
		res := manual.Waypoints(req)
		assert.False(t, res.Success, path)
		assert.True(t, res.Manual, path)
		assert.Contains(t, res.Message, "malformed waypoint", path)
	}

	_, err := manual.ParseWaypoints("1,2,x")
	require.ErrorIs(t, err, manual.ErrBadWaypoint)
}
