package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("worker: pool closed")

// DefaultQueueSize is the request buffer used when NewPool gets queue <= 0.
const DefaultQueueSize = 64

type job struct {
	req   Request
	reply chan Response
}

// Pool runs a fixed number of goroutines, each handling one request at a
// time. The routing itself is never interrupted; ctx is honoured only while
// waiting to enqueue or for the reply.
type Pool struct {
	handler *Handler
	logger  *zap.Logger
	jobs    chan job
	quit    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewPool starts workers goroutines (at least one) serving h.
func NewPool(workers, queue int, h *Handler, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	if h == nil {
		h = NewHandler(nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{
		handler: h,
		logger:  logger,
		jobs:    make(chan job, queue),
		quit:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	logger.Info("worker pool started", zap.Int("workers", workers), zap.Int("queue", queue))
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case j := <-p.jobs:
			queueDepth.Dec()
			p.logger.Debug("dispatch", zap.Int("worker", id), zap.String("request_id", j.req.RequestID))
			j.reply <- p.handler.Handle(j.req)
		}
	}
}

// Submit enqueues req and waits for its response. A missing RequestID is
// filled with a fresh UUID.
func (p *Pool) Submit(ctx context.Context, req Request) (Response, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	j := job{req: req, reply: make(chan Response, 1)}

	select {
	case <-p.quit:
		return Response{}, ErrPoolClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	queueDepth.Inc()
	select {
	case <-ctx.Done():
		queueDepth.Dec()
		return Response{}, ctx.Err()
	case <-p.quit:
		queueDepth.Dec()
		return Response{}, ErrPoolClosed
	case p.jobs <- j:
	}
	select {
	case <-p.quit:
		// Lost the race with Close: nothing will serve the queue any more.
		p.drain()
	default:
	}

	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-p.quit:
		return Response{}, ErrPoolClosed
	case resp := <-j.reply:
		return resp, nil
	}
}

// Close stops the workers after their current request and waits for them.
// Queued requests are abandoned; their Submit calls return ErrPoolClosed.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.quit)
		p.wg.Wait()
		dropped := p.drain()
		p.logger.Info("worker pool stopped", zap.Int("dropped", dropped))
	})
}

// drain empties the queue without blocking and reports how many jobs it
// removed.
func (p *Pool) drain() int {
	n := 0
	for {
		select {
		case <-p.jobs:
			queueDepth.Dec()
			n++
		default:
			return n
		}
	}
}
