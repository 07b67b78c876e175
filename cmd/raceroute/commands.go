package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/config"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/shared"
	"github.com/katalvlaran/raceroute/topology"
	"github.com/katalvlaran/raceroute/worker"
)

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	req, err := worker.DecodeRequest(data)
	if err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	resp := worker.NewHandler(nil, logger).Handle(withDefaults(req, cfg))
	out, err := worker.EncodeResponse(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Worker.Count = workers
	}
	addr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Worker.MetricsAddr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if cfg.Worker.MetricsAddr != "" {
		srv := metricsServer(cfg.Worker.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	cache, err := topology.NewCache(cfg.Worker.CacheSize)
	if err != nil {
		return err
	}
	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, worker.NewHandler(cache, logger), logger)
	defer pool.Close()

	return serveStream(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), pool, cfg)
}

func metricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("metrics listening", zap.String("addr", addr))
	return srv
}

// serveStream routes every request read from in and writes one response
// line per request to out, in completion order.
func serveStream(ctx context.Context, in io.Reader, out io.Writer, pool *worker.Pool, cfg config.Config) error {
	dec := worker.NewDecoder(bufio.NewReader(in))
	w := bufio.NewWriter(out)
	enc := worker.NewEncoder(w)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Worker.Count + cfg.Worker.QueueSize)
	for {
		req, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = g.Wait()
			_ = w.Flush()
			return fmt.Errorf("decode request: %w", err)
		}
		req = withDefaults(req, cfg)
		g.Go(func() error {
			resp, err := pool.Submit(gctx, req)
			if err != nil {
				resp = worker.Response{RequestID: req.RequestID, Result: route.Failure(err.Error()), Error: err.Error()}
			}
			mu.Lock()
			defer mu.Unlock()
			return enc.Write(resp)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return w.Flush()
}

// withDefaults fills a request's missing roster and options from cfg.
func withDefaults(req worker.Request, cfg config.Config) worker.Request {
	if len(req.Raceways) == 0 {
		req.Raceways = cfg.Raceways
	}
	if req.Options == (route.Options{}) {
		req.Options = cfg.Routing
	}
	return req
}

// batchInput is the file read by the batch command.
type batchInput struct {
	Raceways []capacity.Raceway `json:"raceways"`
	Options  *route.Options     `json:"options,omitempty"`
	Cables   []batchCable       `json:"cables"`
}

type batchCable struct {
	worker.Cable
	Area     float64 `json:"area"`
	Diameter float64 `json:"diameter,omitempty"`
}

type batchOutput struct {
	Results     []worker.Response               `json:"results"`
	Utilization map[string]capacity.Utilization `json:"utilization"`
	Shared      []shared.Aggregate              `json:"shared_segments"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	out, err := batch(data, cfg, logger)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

// batch routes every cable in order through one Session so that each
// route sees the fills and field history of the previous ones.
func batch(data []byte, cfg config.Config, logger *zap.Logger) (batchOutput, error) {
	var in batchInput
	if err := sonnet.Unmarshal(data, &in); err != nil {
		return batchOutput{}, fmt.Errorf("decode batch: %w", err)
	}
	if len(in.Raceways) == 0 {
		in.Raceways = cfg.Raceways
	}
	opts := cfg.Routing
	if in.Options != nil {
		opts = *in.Options
	}

	sess, err := worker.NewSession(in.Raceways, opts)
	if err != nil {
		return batchOutput{}, err
	}
	h := worker.NewHandler(nil, logger.With(zap.String("session", sess.ID)))

	out := batchOutput{Results: make([]worker.Response, 0, len(in.Cables))}
	var routes []shared.CableRoute
	diameters := make(map[string]float64)
	for _, c := range in.Cables {
		resp := h.Handle(sess.NewRequest(c.Cable, c.Area))
		if err := sess.Accept(resp, c.Area); err != nil {
			return batchOutput{}, err
		}
		// The session keeps the base graph; drop it from the report.
		resp.BaseGraph = nil
		out.Results = append(out.Results, resp)
		if resp.Success {
			routes = append(routes, shared.CableRoute{Cable: c.Name, Group: c.Group, Segments: resp.Segments})
		}
		if c.Diameter > 0 {
			diameters[c.Name] = c.Diameter
		}
	}
	out.Utilization = sess.Utilization()
	out.Shared = shared.FindCommonFieldRoutes(routes, shared.AggregateOptions{
		Tolerance: opts.WithDefaults().AggregateTolerance,
		Diameters: diameters,
	})
	return out, nil
}

// sharedInput is the file read by the shared command.
type sharedInput struct {
	Routes    []shared.CableRoute `json:"routes"`
	Diameters map[string]float64  `json:"diameters,omitempty"`
}

func runShared(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tol, err := cmd.Flags().GetFloat64("tolerance")
	if err != nil {
		return err
	}
	if tol <= 0 {
		tol = cfg.Routing.AggregateTolerance
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var in sharedInput
	if err := sonnet.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode routes: %w", err)
	}
	aggs := shared.FindCommonFieldRoutes(in.Routes, shared.AggregateOptions{Tolerance: tol, Diameters: in.Diameters})
	logger.Info("shared segments", zap.Int("routes", len(in.Routes)), zap.Int("aggregates", len(aggs)))
	return writeJSON(cmd.OutOrStdout(), aggs)
}

func runTopology(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	raceways := cfg.Raceways
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := sonnet.Unmarshal(data, &raceways); err != nil {
			return fmt.Errorf("decode raceways: %w", err)
		}
	}
	base, err := topology.Build(raceways, cfg.Routing)
	if err != nil {
		return err
	}

	full, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if full {
		return writeJSON(cmd.OutOrStdout(), base)
	}
	islands, err := base.Islands()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "fingerprint %s\nnodes %d\nedges %d\nislands %d\n",
		base.Fingerprint, base.Graph.NodeCount(), base.Graph.EdgeCount(), len(islands))
	for i, ids := range islands {
		fmt.Fprintf(w, "  %d: %s\n", i+1, strings.Join(ids, " "))
	}
	return nil
}

// readInput returns the named file, or stdin when no file is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(cmd.InOrStdin())
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := sonnet.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
