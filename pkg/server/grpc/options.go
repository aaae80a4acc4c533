package grpc_server

import (
	"context"
	"net"
	"time"
)

const (
	_defaultAddr          = ":9090"
	_defaultCheckInterval = 15 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port string) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", port)
	}
}

// HealthCheck sets the probe that drives the reported serving status and
// how often it runs.
func HealthCheck(check func(ctx context.Context) error, interval time.Duration) Option {
	return func(s *Server) {
		s.check = check
		if interval > 0 {
			s.checkInterval = interval
		}
	}
}

// ServiceName adds a named service to the health registry next to the
// overall ("") entry.
func ServiceName(name string) Option {
	return func(s *Server) {
		s.serviceName = name
	}
}
