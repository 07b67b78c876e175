package route_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

func TestResult_Summarize(t *testing.T) {
	res := route.Result{Success: true, Segments: []route.Segment{
		{Kind: route.KindField, Start: geom.Point{0, 0, 0}, End: geom.Point{0, 5, 0}, Length: 5},
		{Kind: route.KindRaceway, Start: geom.Point{0, 5, 0}, End: geom.Point{20, 5, 0}, Length: 20, RacewayID: "T2"},
		{Kind: route.KindRaceway, Start: geom.Point{20, 5, 0}, End: geom.Point{30, 5, 0}, Length: 10, RacewayID: "T1"},
		{Kind: route.KindRaceway, Start: geom.Point{30, 5, 0}, End: geom.Point{31, 5, 0}, Length: 1, RacewayID: "T2"},
		{Kind: route.KindField, Start: geom.Point{31, 5, 0}, End: geom.Point{31, 5, 4}, Length: 4},
	}}
	res.Summarize()

	assert.InDelta(t, 40.0, res.TotalLength, 1e-12)
	assert.InDelta(t, 9.0, res.FieldLength, 1e-12)
	assert.Equal(t, []string{"T2", "T1"}, res.RacewaysUsed)
	assert.Len(t, res.FieldSegments(), 2)
}

func TestOptions_DefaultsAndValidate(t *testing.T) {
	require.NoError(t, route.DefaultOptions().Validate())

	assert.Equal(t, route.DefaultOptions(), route.Options{}.WithDefaults())

	o := route.Options{FieldPenalty: 5}.WithDefaults()
	assert.InDelta(t, 5.0, o.FieldPenalty, 0)
	assert.InDelta(t, route.DefaultFillLimit, o.FillLimit, 0)
	assert.InDelta(t, route.DefaultSharedPenalty, o.SharedPenalty, 0)
	// Zero is a meaningful threshold, cap and neighbour count.
	assert.Zero(t, o.ProximityThreshold)
	assert.Zero(t, o.MaxFieldNeighbors)
	assert.Zero(t, o.JunctionTolerance)
	require.NoError(t, o.Validate())

	bad := route.DefaultOptions()
	bad.FillLimit = 2
	require.ErrorIs(t, bad.Validate(), route.ErrBadOptions)

	bad = route.DefaultOptions()
	bad.SharedPenalty = -1
	require.ErrorIs(t, bad.Validate(), route.ErrBadOptions)
}

func TestOptions_UnmarshalKeepsExplicitZero(t *testing.T) {
	var o route.Options
	require.NoError(t, json.Unmarshal([]byte(`{"proximity_threshold": 0, "max_field_neighbors": 0, "field_penalty": 4}`), &o))
	assert.Zero(t, o.ProximityThreshold)
	assert.Zero(t, o.MaxFieldNeighbors)
	assert.InDelta(t, 4.0, o.FieldPenalty, 0)
	assert.InDelta(t, route.DefaultFillLimit, o.FillLimit, 0)
	assert.InDelta(t, route.DefaultJunctionTolerance, o.JunctionTolerance, 0)
	assert.Equal(t, o, o.WithDefaults())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &o))
	assert.Equal(t, route.DefaultOptions(), o)
}
