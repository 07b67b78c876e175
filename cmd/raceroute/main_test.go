package main

import (
	"bufio"
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/raceroute/config"
	"github.com/katalvlaran/raceroute/worker"
)

const batchFile = `{
  "raceways": [
    {"id": "T1", "start": [0,0,0], "end": [100,0,0], "width": 2, "height": 2, "current_fill": 0}
  ],
  "cables": [
    {"name": "C1", "start": [0,0,0], "end": [100,0,0], "area": 1, "diameter": 1},
    {"name": "C2", "start": [0,0,0], "end": [100,0,0], "area": 1, "diameter": 1}
  ]
}`

func TestBatch_SequentialFills(t *testing.T) {
	out, err := batch([]byte(batchFile), config.Default(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, out.Results, 2)

	// 2*2*0.4 = 1.6: only the first cable fits in T1.
	assert.Equal(t, []string{"T1"}, out.Results[0].RacewaysUsed)
	assert.Empty(t, out.Results[1].RacewaysUsed)
	assert.InDelta(t, 1, out.Utilization["T1"].CurrentFill, 1e-12)

	// The second cable is all field, C1 has none: nothing shared.
	assert.Empty(t, out.Shared)
	for _, r := range out.Results {
		assert.Nil(t, r.BaseGraph)
	}
}

func TestBatch_SharedField(t *testing.T) {
	in := `{
	  "raceways": [{"id": "FAR", "start": [0,500,0], "end": [10,500,0], "width": 6, "height": 4}],
	  "cables": [
	    {"name": "A", "start": [0,0,0], "end": [20,0,0], "area": 1, "diameter": 2},
	    {"name": "B", "start": [0,0,0], "end": [20,0,0], "area": 1, "diameter": 2}
	  ]
	}`
	out, err := batch([]byte(in), config.Default(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, out.Shared, 1)
	assert.Equal(t, []string{"A", "B"}, out.Shared[0].Cables)
	assert.InDelta(t, 2*math.Pi, out.Shared[0].TotalArea, 1e-9)
}

func TestServeStream(t *testing.T) {
	cfg := config.Default()
	cfg.Worker.Count = 2
	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, worker.NewHandler(nil, nil), nil)
	defer pool.Close()

	line := `{"request_id": "%s", "raceways": [{"id": "T1", "start": [0,0,0], "end": [40,0,0], "width": 12, "height": 4}],` +
		` "cable": {"start": [0,0,0], "end": [40,5,0]}, "cable_area": 1}`
	in := strings.Join([]string{
		strings.Replace(line, "%s", "r1", 1),
		strings.Replace(line, "%s", "r2", 1),
		strings.Replace(line, "%s", "r3", 1),
	}, "\n") + "\n"

	var sb strings.Builder
	require.NoError(t, serveStream(context.Background(), strings.NewReader(in), &sb, pool, cfg))

	seen := make(map[string]bool)
	sc := bufio.NewScanner(strings.NewReader(sb.String()))
	for sc.Scan() {
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		seen[resp["request_id"].(string)] = true
	}
	assert.Equal(t, map[string]bool{"r1": true, "r2": true, "r3": true}, seen)
}
