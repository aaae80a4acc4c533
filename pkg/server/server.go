package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Runnable is a server with a background Start and a graceful Shutdown.
type Runnable interface {
	Name() string
	Start()
	Notify() <-chan error
	Shutdown(ctx context.Context) error
}

// Run starts every server and blocks until ctx is cancelled or one of them
// fails, then shuts all of them down using shutdownCtx for the deadline.
// A server failure is returned; a plain cancellation returns nil.
func Run(ctx context.Context, shutdownCtx func() (context.Context, context.CancelFunc), servers ...Runnable) error {
	for _, s := range servers {
		s.Start()
	}

	failed := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err, ok := <-s.Notify(); ok && err != nil {
				failed <- fmt.Errorf("%s server: %w", s.Name(), err)
				return
			}
			failed <- fmt.Errorf("%s server stopped unexpectedly", s.Name())
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		zap.L().Info("Shutdown signal received")
	case runErr = <-failed:
		zap.L().Error("Server failed", zap.Error(runErr))
	}

	sctx, cancel := shutdownCtx()
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, s := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Shutdown(sctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("shutdown %s: %w", s.Name(), err))
				mu.Unlock()
				return
			}
			zap.L().Info("Server stopped", zap.String("server", s.Name()))
		}()
	}
	wg.Wait()

	return errors.Join(append([]error{runErr}, errs...)...)
}
