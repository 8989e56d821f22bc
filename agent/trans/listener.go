/*
Package trans implements the websocket client which listens the agent's
notification channel and feeds everything it receives to the event bus.

The agent sends envelopes of the form

	{"topic": "connections", "wallet_id": "...", "payload": {...}}

and keepalive pings between them. The listener reconnects with exponential
backoff until its context is cancelled or the bus is closed.
*/
package trans

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
	"github.com/tidwall/gjson"
	"nhooyr.io/websocket"
)

const (
	APIKeyHeader = "X-API-Key"

	readLimit = 4 << 20
)

var (
	ErrIdle   = errors.New("websocket idle")
	ErrClosed = errors.New("websocket closed by peer")
)

type Config struct {
	URL     string
	APIKey  string
	Token   string
	MaxIdle time.Duration

	// Backoff returns the reconnect policy for one Run. Default is
	// exponential without elapsed time limit.
	Backoff func() backoff.BackOff

	OnConnect    func()
	OnDisconnect func(err error)
}

type Listener struct {
	cfg Config
	bus *bus.Bus

	connected  atomic.Bool
	lastSeen   atomic.Int64
	received   atomic.Uint64
	keepalives atomic.Uint64
}

func New(cfg Config, b *bus.Bus) *Listener {
	assert.NotEmpty(cfg.URL, "websocket URL cannot be empty")
	assert.That(b != nil, "bus cannot be nil")

	if cfg.MaxIdle == 0 {
		cfg.MaxIdle = utils.Settings.MaxIdle()
	}
	if cfg.Backoff == nil {
		cfg.Backoff = func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = 0
			return bo
		}
	}
	return &Listener{cfg: cfg, bus: b}
}

// Connected tells if there is a live websocket connection at the moment.
func (l *Listener) Connected() bool {
	return l.connected.Load()
}

// Received returns the number of envelopes read, keepalives included.
func (l *Listener) Received() uint64 {
	return l.received.Load()
}

func (l *Listener) Keepalives() uint64 {
	return l.keepalives.Load()
}

// Run listens until ctx is done or the bus is closed. It returns nil when
// ctx ends the listening and bus.ErrClosed when the bus does.
func (l *Listener) Run(ctx context.Context) error {
	bo := backoff.WithContext(l.cfg.Backoff(), ctx)
	for {
		before := l.received.Load()
		err := l.session(ctx)
		if ctx.Err() != nil {
			glog.V(1).Infoln("websocket listener stopped:", l.cfg.URL)
			return nil
		}
		if errors.Is(err, bus.ErrClosed) {
			glog.V(1).Infoln("bus closed, websocket listener stops")
			return err
		}
		if l.received.Load() > before {
			bo.Reset()
		}
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			return fmt.Errorf("websocket reconnect gave up: %w", err)
		}
		glog.Warningf("websocket %s: %v, reconnecting in %v", l.cfg.URL, err, wait)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

func (l *Listener) session(ctx context.Context) (err error) {
	defer err2.Handle(&err)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, _ := try.To2(websocket.Dial(ctx, l.cfg.URL, &websocket.DialOptions{
		HTTPHeader: l.header(),
	}))
	conn.SetReadLimit(readLimit)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var idle atomic.Bool
	l.touch()
	stop := try.To1(l.monitor(func() {
		idle.Store(true)
		cancel()
	}))
	defer stop()

	l.setConnected()
	defer func() {
		l.setDisconnected(err)
	}()

	for {
		_, data, err := conn.Read(ctx)
		switch {
		case err == nil:
		case idle.Load():
			return ErrIdle
		case websocket.CloseStatus(err) == websocket.StatusNormalClosure:
			return ErrClosed
		default:
			return err
		}
		l.touch()
		l.received.Add(1)

		n, ok := parseEnvelope(data)
		if !ok {
			glog.Warningln("websocket: skipping unreadable envelope")
			continue
		}
		if event.IsKeepalive(n) {
			l.keepalives.Add(1)
			glog.V(5).Infoln("websocket keepalive:", n.Topic)
			continue
		}
		glog.V(3).Infof("websocket <- %s/%s", n.Tenant, n.Topic)
		if err := l.bus.Ingest(ctx, n); err != nil {
			return err
		}
	}
}

// monitor schedules the idle check. The returned func stops it.
func (l *Listener) monitor(onIdle func()) (stop func(), err error) {
	defer err2.Handle(&err, "idle monitor")

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	try.To1(s.Every(l.cfg.MaxIdle / 4).Do(func() {
		silent := time.Since(time.Unix(0, l.lastSeen.Load()))
		if silent > l.cfg.MaxIdle {
			glog.Warningf("websocket %s silent for %v", l.cfg.URL, silent.Round(time.Millisecond))
			onIdle()
		}
	}))
	s.StartAsync()
	return s.Stop, nil
}

func (l *Listener) header() http.Header {
	h := http.Header{}
	if l.cfg.APIKey != "" {
		h.Set(APIKeyHeader, l.cfg.APIKey)
	}
	if l.cfg.Token != "" {
		h.Set("Authorization", "Bearer "+l.cfg.Token)
	}
	return h
}

func (l *Listener) touch() {
	l.lastSeen.Store(time.Now().UnixNano())
}

func (l *Listener) setConnected() {
	l.connected.Store(true)
	glog.V(1).Infoln("websocket connected:", l.cfg.URL)
	if l.cfg.OnConnect != nil {
		l.cfg.OnConnect()
	}
}

func (l *Listener) setDisconnected(err error) {
	l.connected.Store(false)
	glog.V(1).Infoln("websocket disconnected:", l.cfg.URL, err)
	if l.cfg.OnDisconnect != nil {
		l.cfg.OnDisconnect(err)
	}
}

func parseEnvelope(data []byte) (n event.Notification, ok bool) {
	if !gjson.ValidBytes(data) {
		return n, false
	}
	env := gjson.ParseBytes(data)
	topic := env.Get("topic").String()
	if topic == "" {
		return n, false
	}
	n.Topic = topic
	n.Tenant = env.Get("wallet_id").String()
	if p := env.Get("payload"); p.Exists() {
		n.Payload = []byte(p.Raw)
	}
	return n, true
}
