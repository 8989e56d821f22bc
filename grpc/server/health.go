/*
Package server implements the gRPC health service of the hook. The service
is SERVING while the event bus is open and, when a websocket listener is in
use, the listener is connected. The status is kept in grpc's health.Server,
which serves both the whole server ("") and ServiceName.
*/
package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name health checks can ask besides the empty name of
// the whole server.
const ServiceName = "findy.hook.v1.Hook"

type Health struct {
	srv         *health.Server
	needsListen bool

	lk        sync.Mutex
	connected bool
}

// NewHealth returns the health service of b. If listener is true the status
// follows also the websocket connection, see Connected and Disconnected.
// When b starts closing the service goes NOT_SERVING for good.
func NewHealth(b *bus.Bus, listener bool) *Health {
	assert.That(b != nil, "bus cannot be nil")

	h := &Health{
		srv:         health.NewServer(),
		needsListen: listener,
	}
	h.update()
	go func() {
		<-b.Closing()
		glog.V(1).Infoln("bus closing, health NOT_SERVING")
		h.srv.Shutdown()
	}()
	return h
}

func (h *Health) Connected() {
	h.setConnected(true)
}

func (h *Health) Disconnected(error) {
	h.setConnected(false)
}

func (h *Health) setConnected(c bool) {
	h.lk.Lock()
	defer h.lk.Unlock()
	h.connected = c
	h.setStatus()
}

func (h *Health) update() {
	h.lk.Lock()
	defer h.lk.Unlock()
	h.setStatus()
}

func (h *Health) setStatus() {
	st := healthpb.HealthCheckResponse_SERVING
	if h.needsListen && !h.connected {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	glog.V(3).Infoln("health status:", st)
	h.srv.SetServingStatus("", st)
	h.srv.SetServingStatus(ServiceName, st)
}

// Status returns the current serving status of ServiceName.
func (h *Health) Status() healthpb.HealthCheckResponse_ServingStatus {
	resp, err := h.srv.Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func (h *Health) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.srv)
}

// Serve serves the health service on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener, h *Health) (err error) {
	defer err2.Handle(&err, "grpc serve")

	s := grpc.NewServer()
	h.Register(s)
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	glog.V(1).Infoln("gRPC health service on", lis.Addr())
	try.To(s.Serve(lis))
	return nil
}

// ListenAndServe opens the TCP port and calls Serve.
func ListenAndServe(ctx context.Context, port int, h *Health) (err error) {
	defer err2.Handle(&err, "grpc listen")

	lis := try.To1(net.Listen("tcp", fmt.Sprintf(":%d", port)))
	return Serve(ctx, lis, h)
}
