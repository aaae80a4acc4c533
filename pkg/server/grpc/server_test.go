package grpc_server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestServer_HealthFollowsProbe(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	s := New(
		Port("0"),
		ServiceName("shop-admin"),
		HealthCheck(func(context.Context) error {
			if failing.Load() {
				return errors.New("database unreachable")
			}
			return nil
		}, 10*time.Millisecond),
	)
	s.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	conn, err := grpc.NewClient(s.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := healthpb.NewHealthClient(conn)
	status := func(service string) healthpb.HealthCheckResponse_ServingStatus {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		res, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			return healthpb.HealthCheckResponse_UNKNOWN
		}
		return res.GetStatus()
	}

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status("shop-admin"))

	failing.Store(true)
	assert.Eventually(t, func() bool {
		return status("") == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	failing.Store(false)
	assert.Eventually(t, func() bool {
		return status("shop-admin") == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_ShutdownClosesNotify(t *testing.T) {
	t.Parallel()

	s := New(Port("0"))
	s.Start()

	require.NoError(t, s.Shutdown(context.Background()))

	select {
	case err, ok := <-s.Notify():
		assert.False(t, ok, "unexpected error %v", err)
	case <-time.After(time.Second):
		t.Fatal("notify channel not closed")
	}
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	t.Parallel()

	s := New(Port("-1"))
	s.Start()

	err, ok := <-s.Notify()
	assert.True(t, ok)
	assert.Error(t, err)
}
