package grpc_server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server exposes the standard gRPC health service, with status following
// the configured health probe, plus server reflection.
type Server struct {
	server *grpc.Server
	health *health.Server
	notify chan error

	address       string
	serviceName   string
	check         func(ctx context.Context) error
	checkInterval time.Duration

	mu       sync.Mutex
	listener net.Listener
	stop     chan struct{}
	stopOnce sync.Once
}

// New -.
func New(opts ...Option) *Server {
	s := &Server{
		notify:        make(chan error, 1),
		address:       _defaultAddr,
		checkInterval: _defaultCheckInterval,
		stop:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = grpc.NewServer()
	s.health = health.NewServer()
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	return s
}

func (s *Server) Name() string { return "grpc" }

// Addr returns the bound address once Start has run.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Start -.
func (s *Server) Start() {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		s.notify <- err
		close(s.notify)
		return
	}

	s.mu.Lock()
	s.listener = lis
	s.mu.Unlock()

	s.probe()
	go s.watch()

	go func() {
		zap.L().Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.notify <- err
		}
		close(s.notify)
	}()
}

func (s *Server) watch() {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.probe()
		case <-s.stop:
			return
		}
	}
}

func (s *Server) probe() {
	status := healthpb.HealthCheckResponse_SERVING
	if s.check != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.checkInterval)
		err := s.check(ctx)
		cancel()
		if err != nil {
			zap.L().Warn("Health probe failed", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.setStatus(status)
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	if s.serviceName != "" {
		s.health.SetServingStatus(s.serviceName, status)
	}
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown marks the server NOT_SERVING and stops it gracefully, forcing
// the stop when ctx ends first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}
