/*
Package server encapsulates http server entry points. It receives the agent's
webhook notifications and serves the version and metrics endpoints.

The agent posts every notification to

	POST <base>/topic/{topic}/

with the tenant's wallet id in the X-Wallet-Id header. An absent header means
the base wallet.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	WalletHeader = "X-Wallet-Id"

	maxBody         = 4 << 20
	shutdownTimeout = 5 * time.Second
)

type receiver struct {
	bus   *bus.Bus
	names tenant.Names
}

// NewRouter returns the handler of all of the http endpoints. Notifications
// are ingested to b. The names are used only for logging and can be nil.
func NewRouter(b *bus.Bus, names tenant.Names) *mux.Router {
	assert.That(b != nil, "bus cannot be nil")

	rcvr := &receiver{bus: b, names: names}
	r := mux.NewRouter()
	r.HandleFunc("/topic/{topic}/", rcvr.topic).Methods(http.MethodPost)
	r.HandleFunc("/topic/{topic}", rcvr.topic).Methods(http.MethodPost)
	r.HandleFunc("/version", version).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// StartHTTPServer starts the http server. The function blocks until ctx is
// done or the server fails.
func StartHTTPServer(ctx context.Context, b *bus.Bus, names tenant.Names, serverPort uint) (err error) {
	defer err2.Handle(&err, "http server")

	server := &http.Server{
		Addr:              fmt.Sprintf(":%v", serverPort),
		Handler:           NewRouter(b, names),
		ReadHeaderTimeout: utils.Settings.Timeout(),
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			glog.Warningln("http server shutdown:", err)
		}
	}()

	glog.V(1).Infof("HTTP server on port: %v, webhook pattern: \"/topic/{topic}/\"",
		serverPort)
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (rc *receiver) topic(w http.ResponseWriter, r *http.Request) {
	n := event.Notification{
		Tenant: r.Header.Get(WalletHeader),
		Topic:  mux.Vars(r)["topic"],
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		glog.Warningf("webhook %s: cannot read body: %v", n.Topic, err)
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	n.Payload = data
	glog.V(3).Infof("webhook <- %s/%s", tenant.Label(rc.names, n.Tenant), n.Topic)

	ctx, cancel := context.WithTimeout(r.Context(), utils.Settings.Timeout())
	defer cancel()

	switch err := rc.bus.Ingest(ctx, n); {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, bus.ErrClosed):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		glog.Warningf("webhook %s/%s: bus stayed full: %v",
			tenant.Label(rc.names, n.Tenant), n.Topic, err)
		http.Error(w, "event bus full", http.StatusGatewayTimeout)
	default:
		glog.Errorln("webhook ingest:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func version(w http.ResponseWriter, _ *http.Request) {
	glog.V(5).Info("/version requested")
	_, _ = w.Write([]byte(utils.Version))
}
