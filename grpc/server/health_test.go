package server

import (
	"context"
	"flag"
	"net"
	"os"
	"testing"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const (
	bufSize  = 1024 * 1024
	waitTime = 2 * time.Second
	tick     = 10 * time.Millisecond
)

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

func startHealth(t *testing.T, h *Health) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = Serve(ctx, lis, h) }()

	conn, err := grpc.DialContext(ctx, "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestHealth_Check(t *testing.T) {
	b := bus.New()
	h := NewHealth(b, false)
	client := startHealth(t, h)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "other"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, b.Close())
	assert.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
		return err == nil && resp.Status == healthpb.HealthCheckResponse_NOT_SERVING
	}, waitTime, tick)
}

func TestHealth_Listener(t *testing.T) {
	b := bus.New()
	h := NewHealth(b, true)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Status())
	h.Connected()
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Status())
	h.Disconnected(nil)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Status())
	h.Connected()
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Status())

	require.NoError(t, b.Close())
	assert.Eventually(t, func() bool {
		return h.Status() == healthpb.HealthCheckResponse_NOT_SERVING
	}, waitTime, tick)

	h.Connected()
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, h.Status())
}

func TestHealth_Watch(t *testing.T) {
	b := bus.New()
	defer b.Close()
	h := NewHealth(b, true)
	client := startHealth(t, h)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := client.Watch(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	h.Connected()
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	require.NoError(t, b.Close())
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestHealth_WatchUnknown(t *testing.T) {
	b := bus.New()
	defer b.Close()
	client := startHealth(t, NewHealth(b, false))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	stream, err := client.Watch(ctx, &healthpb.HealthCheckRequest{Service: "other"})
	require.NoError(t, err)
	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVICE_UNKNOWN, resp.Status)

	// the stream stays open until the client gives up
	_, err = stream.Recv()
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}
