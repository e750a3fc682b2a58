package http

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/freekieb7/pebble/pool"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Server accepts connections on a single goroutine and hands each one to the
// worker pool as a job. A worker owns the connection end to end: parse,
// middleware, dispatch, serialize, flush, close. There is no keep-alive; one
// request per connection.
type Server struct {
	Name   string
	Router *Router

	pool     *pool.Pool
	logger   *slog.Logger
	tracer   trace.Tracer
	requests metric.Int64Counter
	latency  metric.Float64Histogram

	mu       sync.Mutex
	listener net.Listener

	closeOnce sync.Once
	poolDone  chan struct{}
}

// NewServer builds a server around a router with a fixed number of workers.
func NewServer(name string, router *Router, workers int) *Server {
	logger := otelslog.NewLogger(name)
	meter := otel.Meter(name)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Requests handled, by method and status"),
		metric.WithUnit("{request}"))
	if err != nil {
		logger.Error("request counter unavailable", "error", err)
	}

	latency, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Time from accept to response flush"),
		metric.WithUnit("ms"))
	if err != nil {
		logger.Error("latency histogram unavailable", "error", err)
	}

	router.logger = logger

	return &Server{
		Name:     name,
		Router:   router,
		pool:     pool.New(workers, logger),
		logger:   logger,
		tracer:   otel.Tracer(name),
		requests: requests,
		latency:  latency,
		poolDone: make(chan struct{}),
	}
}

func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.logger.Info("http server running", "name", s.Name, "addr", addr)

	return s.Serve(listener)
}

// Serve freezes the router and runs the accept loop. Acceptance is never
// blocked by request processing; each connection becomes one pool job. A
// rejected submission (pool already shut down) drops the connection with a
// log line and is not retried.
func (s *Server) Serve(listener net.Listener) error {
	s.Router.freeze()

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("failed to accept connection", "error", err)
			continue
		}

		if err := s.pool.Submit(func() { s.handleConn(conn) }); err != nil {
			s.logger.Error("failed to assign worker to connection", "error", err)
			conn.Close()
		}
	}
}

// Shutdown closes the listener and tears the pool down, waiting for workers
// to finish the jobs they already dequeued or for the context to expire. If
// the context expires first the pool keeps draining in the background; calling
// Shutdown again waits on that same drain.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Error("failed to close listener", "error", err)
		}
	}

	s.closeOnce.Do(func() {
		go func() {
			s.pool.Close()
			close(s.poolDone)
		}()
	})

	select {
	case <-s.poolDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleConn processes one connection on a pool worker. Parse and I/O
// failures abandon the connection without a response; they are fatal to this
// connection only, never to the process.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	ctx, span := s.tracer.Start(context.Background(), "http.request")
	defer span.End()

	start := time.Now()

	req, err := ReadRequest(bufio.NewReader(conn))
	if err != nil {
		s.logger.Error("failed to parse request", "error", err)
		return
	}

	res := s.Router.HandleRequest(req)

	if err := res.WriteTo(bufio.NewWriter(conn)); err != nil {
		s.logger.Error("failed to write response", "error", err)
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.Int("http.response.status_code", int(res.Status)),
	)
	if s.requests != nil {
		s.requests.Add(ctx, 1, attrs)
	}
	if s.latency != nil {
		s.latency.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	}
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.Int("http.response.status_code", int(res.Status)),
	)
}
