// Package listen implements the service command which receives the agent's
// notifications from webhooks and, optionally, from the websocket channel.
package listen

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/trans"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/findy-network/findy-agent-hook/cmds"
	grpcserver "github.com/findy-network/findy-agent-hook/grpc/server"
	"github.com/findy-network/findy-agent-hook/server"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type Cmd struct {
	cmds.BusCmd

	ServiceName string
	ServerPort  uint
	GRPCPort    int

	WsURL   string
	APIKey  string
	Token   string
	MaxIdle time.Duration
	Timeout time.Duration
}

var DefaultValues = Cmd{
	ServiceName: "findy-agent-hook",
	ServerPort:  8090,
	MaxIdle:     utils.DefaultMaxIdle,
	Timeout:     utils.HTTPReqTimeout,
}

func (c Cmd) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service name cannot be empty")
	}
	if c.ServerPort == 0 {
		return errors.New("server port cannot be zero")
	}
	if c.GRPCPort < 0 {
		return errors.New("grpc port cannot be negative")
	}
	if c.WsURL != "" {
		if err := cmds.ValidateWsURL(c.WsURL); err != nil {
			return err
		}
		if c.MaxIdle <= 0 {
			return errors.New("max idle must be positive")
		}
	}
	return c.BusCmd.Validate()
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return nil, c.Run(ctx, w)
}

// Run runs the service until ctx is done or one of its servers fails.
func (c Cmd) Run(ctx context.Context, w io.Writer) (err error) {
	defer err2.Handle(&err, "listen")

	c.setRuntimeSettings()
	b, names := try.To2(c.NewBus(utils.Settings.ServiceName()))
	defer b.Close()

	_ = try.To1(b.Subscribe(bus.Filter{}, func(ev event.Event) error {
		glog.V(2).Infof("%s %s", tenant.Label(names, ev.Tenant), ev)
		return nil
	}))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 3)

	health := grpcserver.NewHealth(b, c.WsURL != "")
	if c.GRPCPort > 0 {
		go func() {
			errCh <- grpcserver.ListenAndServe(ctx, c.GRPCPort, health)
		}()
	}
	if c.WsURL != "" {
		l := trans.New(trans.Config{
			URL:          c.WsURL,
			APIKey:       c.APIKey,
			Token:        c.Token,
			MaxIdle:      c.MaxIdle,
			OnConnect:    health.Connected,
			OnDisconnect: health.Disconnected,
		}, b)
		go func() {
			errCh <- l.Run(ctx)
		}()
	}
	go func() {
		errCh <- server.StartHTTPServer(ctx, b, names, c.ServerPort)
	}()

	cmds.Fprintf(w, "%s listening on port %d\n", utils.Settings.ServiceName(), c.ServerPort)
	glog.V(1).Infoln(utils.Settings.VersionInfo())

	select {
	case <-ctx.Done():
		glog.V(1).Infoln("listen stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

func (c Cmd) setRuntimeSettings() {
	utils.Settings.SetServiceName(c.ServiceName)
	utils.Settings.SetVersionInfo(c.ServiceName + " " + utils.Version)
	utils.Settings.SetMaxIdle(c.MaxIdle)
	utils.Settings.SetTimeout(c.Timeout)
}
