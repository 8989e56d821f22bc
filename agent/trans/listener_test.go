package trans

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

const waitTime = 3 * time.Second

const (
	connEnvelope = `{"topic":"connections","wallet_id":"w1","payload":{"connection_id":"c1","state":"active"}}`
	pingEnvelope = `{"topic":"ping","authenticated":true}`
)

// agentServer plays the agent's /ws endpoint. Every connection gets the next
// message batch; after the batch it waits for the client to go away unless
// hangup is set.
type agentServer struct {
	*httptest.Server

	lk      sync.Mutex
	batches [][]string
	hangup  bool
	headers []http.Header
}

func newAgentServer(t *testing.T, hangup bool, batches ...[]string) *agentServer {
	t.Helper()
	s := &agentServer{batches: batches, hangup: hangup}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *agentServer) serve(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close(websocket.StatusNormalClosure, "")

	s.lk.Lock()
	s.headers = append(s.headers, r.Header.Clone())
	var batch []string
	if len(s.batches) > 0 {
		batch, s.batches = s.batches[0], s.batches[1:]
	}
	s.lk.Unlock()

	for _, m := range batch {
		if err := c.Write(r.Context(), websocket.MessageText, []byte(m)); err != nil {
			return
		}
	}
	if s.hangup {
		return
	}
	_, _, _ = c.Read(r.Context())
}

func (s *agentServer) url() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func (s *agentServer) header(i int) http.Header {
	s.lk.Lock()
	defer s.lk.Unlock()
	if i >= len(s.headers) {
		return nil
	}
	return s.headers[i]
}

func fastBackoff() backoff.BackOff {
	return backoff.NewConstantBackOff(10 * time.Millisecond)
}

func subscribe(t *testing.T, b *bus.Bus) chan event.Event {
	t.Helper()
	ch := make(chan event.Event, 10)
	_, err := b.Subscribe(bus.Filter{}, func(ev event.Event) error {
		ch <- ev
		return nil
	})
	require.NoError(t, err)
	return ch
}

func receive(t *testing.T, ch chan event.Event) event.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(waitTime):
		t.Fatal("timeout waiting event")
	}
	return event.Event{}
}

func TestListener_Run(t *testing.T) {
	srv := newAgentServer(t, false, []string{pingEnvelope, connEnvelope})
	b := bus.New()
	defer b.Close()
	evs := subscribe(t, b)

	l := New(Config{
		URL:     srv.url(),
		APIKey:  "secret",
		Token:   "jwt",
		MaxIdle: time.Minute,
		Backoff: fastBackoff,
	}, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ev := receive(t, evs)
	assert.Equal(t, "w1", ev.Tenant)
	assert.Equal(t, event.TopicConnections, ev.Topic)
	assert.Equal(t, "c1", ev.Keys().Connection)
	assert.True(t, l.Connected())
	assert.Equal(t, uint64(2), l.Received())
	assert.Equal(t, uint64(1), l.Keepalives())

	h := srv.header(0)
	require.NotNil(t, h)
	assert.Equal(t, "secret", h.Get(APIKeyHeader))
	assert.Equal(t, "Bearer jwt", h.Get("Authorization"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(waitTime):
		t.Fatal("listener did not stop")
	}
	assert.False(t, l.Connected())
}

func TestListener_Reconnect(t *testing.T) {
	second := `{"topic":"connections","wallet_id":"w1","payload":{"connection_id":"c2","state":"active"}}`
	srv := newAgentServer(t, true, []string{connEnvelope}, []string{second})
	b := bus.New()
	defer b.Close()
	evs := subscribe(t, b)

	var lk sync.Mutex
	connects, disconnects := 0, []error{}
	l := New(Config{
		URL:     srv.url(),
		MaxIdle: time.Minute,
		Backoff: fastBackoff,
		OnConnect: func() {
			lk.Lock()
			connects++
			lk.Unlock()
		},
		OnDisconnect: func(err error) {
			lk.Lock()
			disconnects = append(disconnects, err)
			lk.Unlock()
		},
	}, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	assert.Equal(t, "c1", receive(t, evs).Keys().Connection)
	assert.Equal(t, "c2", receive(t, evs).Keys().Connection)

	lk.Lock()
	defer lk.Unlock()
	assert.GreaterOrEqual(t, connects, 2)
	require.NotEmpty(t, disconnects)
	assert.ErrorIs(t, disconnects[0], ErrClosed)
}

func TestListener_Idle(t *testing.T) {
	srv := newAgentServer(t, false)
	b := bus.New()
	defer b.Close()

	idle := make(chan error, 5)
	l := New(Config{
		URL:     srv.url(),
		MaxIdle: 200 * time.Millisecond,
		Backoff: func() backoff.BackOff { return backoff.NewConstantBackOff(time.Minute) },
		OnDisconnect: func(err error) {
			idle <- err
		},
	}, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	select {
	case err := <-idle:
		assert.ErrorIs(t, err, ErrIdle)
	case <-time.After(waitTime):
		t.Fatal("idle connection was not closed")
	}
}

func TestListener_BusClosed(t *testing.T) {
	srv := newAgentServer(t, false, []string{connEnvelope})
	b := bus.New()
	require.NoError(t, b.Close())

	var disconnects []error
	l := New(Config{
		URL:          srv.url(),
		MaxIdle:      time.Minute,
		Backoff:      fastBackoff,
		OnDisconnect: func(err error) { disconnects = append(disconnects, err) },
	}, b)
	err := l.Run(context.Background())
	assert.True(t, errors.Is(err, bus.ErrClosed))
	require.Len(t, disconnects, 1)
	assert.ErrorIs(t, disconnects[0], bus.ErrClosed)
	assert.False(t, l.Connected())
}

func TestListener_DialFails(t *testing.T) {
	b := bus.New()
	defer b.Close()

	l := New(Config{
		URL:     "ws://127.0.0.1:1/ws",
		MaxIdle: time.Minute,
		Backoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(fastBackoff(), 2)
		},
	}, b)
	err := l.Run(context.Background())
	assert.Error(t, err)
	assert.False(t, l.Connected())
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		ok     bool
		tenant string
		topic  string
		body   string
	}{
		{"full", connEnvelope, true, "w1", "connections", `{"connection_id":"c1","state":"active"}`},
		{"base wallet", `{"topic":"basicmessages","payload":{}}`, true, "", "basicmessages", `{}`},
		{"keepalive", pingEnvelope, true, "", "ping", ""},
		{"no topic", `{"payload":{}}`, false, "", "", ""},
		{"garbage", `not json`, false, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := parseEnvelope([]byte(tt.data))
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.tenant, n.Tenant)
			assert.Equal(t, tt.topic, n.Topic)
			assert.Equal(t, tt.body, string(n.Payload))
		})
	}
}
