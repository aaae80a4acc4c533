package http_server

import (
	"net"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/penglongli/gin-metrics/ginmetrics"
)

const (
	_defaultAddr            = ":80"
	_defaultTimeout         = 5 * time.Second
	_defaultShutdownTimeout = 10 * time.Second
	_defaultReadHeader      = 5 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port string) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", port)
	}
}

// Timeout bounds each request handler.
func Timeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// Middleware runs handlers on every request, before routing.
func Middleware(handlers ...gin.HandlerFunc) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, handlers...)
	}
}

// Monitor serves gin-metrics on the engine.
func Monitor(m *ginmetrics.Monitor) Option {
	return func(s *Server) {
		s.monitor = m
	}
}

// Routes registers application routes once the engine is built.
func Routes(register func(r *gin.Engine)) Option {
	return func(s *Server) {
		s.routes = append(s.routes, register)
	}
}
