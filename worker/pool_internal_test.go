package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gaugeValue(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, queueDepth.Write(&m))
	return m.GetGauge().GetValue()
}

// A pool without workers keeps everything queued until Close drops it.
func TestPool_CloseReleasesQueueDepth(t *testing.T) {
	p := &Pool{
		handler: NewHandler(nil, nil),
		logger:  zap.NewNop(),
		jobs:    make(chan job, 4),
		quit:    make(chan struct{}),
	}
	before := gaugeValue(t)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Submit(context.Background(), Request{})
		}(i)
	}
	require.Eventually(t, func() bool { return len(p.jobs) == 3 }, time.Second, time.Millisecond)
	assert.InDelta(t, before+3, gaugeValue(t), 0)

	p.Close()
	wg.Wait()
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrPoolClosed)
	}
	assert.Zero(t, len(p.jobs))
	assert.InDelta(t, before, gaugeValue(t), 0)
}
