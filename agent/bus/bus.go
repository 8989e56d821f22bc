/*
Package bus is the event bus between the agent's notification channel and the
protocol watchers. A bus has a bounded queue and one dispatch goroutine which
decodes the notifications in arrival order and delivers the events to the
matching subscriptions. Because the handlers are called from the dispatch
goroutine, handlers of one bus never run concurrently and every subscription
sees the events in the ingestion order.

When the queue is full, the overflow policy decides: Block makes Ingest wait
for room, and DropOldest throws the oldest queued notification away. The
agent pushes notifications and cannot be slowed down, so a webhook receiver
using Block answers slowly instead.
*/
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2/assert"
	"golang.org/x/time/rate"
)

const (
	DefaultCapacity    = 10
	DefaultSlowHandler = time.Second
	DefaultName        = "default"
)

var ErrClosed = errors.New("bus closed")

// Overflow is the policy for a full queue.
type Overflow int

const (
	Block Overflow = 0 + iota
	DropOldest
)

func (o Overflow) String() string {
	switch o {
	case Block:
		return "block"
	case DropOldest:
		return "drop-oldest"
	}
	return fmt.Sprintf("Overflow(%d)", int(o))
}

// ParseOverflow parses the names returned by Overflow.String.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "block", "":
		return Block, nil
	case "drop-oldest":
		return DropOldest, nil
	}
	return Block, fmt.Errorf("unknown overflow policy %q", s)
}

type Option func(*Bus)

func WithName(name string) Option {
	return func(b *Bus) { b.name = name }
}

func WithCapacity(capacity int) Option {
	return func(b *Bus) { b.capacity = capacity }
}

func WithOverflow(o Overflow) Option {
	return func(b *Bus) { b.overflow = o }
}

// WithNames sets the wallet names used in the logs.
func WithNames(names tenant.Names) Option {
	return func(b *Bus) { b.names = names }
}

// WithSlowHandler sets the handler duration after which a warning is logged.
func WithSlowHandler(d time.Duration) Option {
	return func(b *Bus) { b.slow = d }
}

type Bus struct {
	name     string
	capacity int
	overflow Overflow
	names    tenant.Names
	slow     time.Duration

	queue     chan event.Notification
	closing   chan struct{}
	stopped   chan struct{}
	ingesting sync.WaitGroup
	closeOnce sync.Once

	lk     sync.RWMutex
	closed bool
	subs   []*Subscription

	decodeLog *rate.Limiter
	metrics   *metrics
}

// New creates a bus and starts its dispatch goroutine.
func New(opts ...Option) *Bus {
	b := &Bus{
		name:      DefaultName,
		capacity:  DefaultCapacity,
		overflow:  Block,
		slow:      DefaultSlowHandler,
		closing:   make(chan struct{}),
		stopped:   make(chan struct{}),
		decodeLog: rate.NewLimiter(rate.Every(time.Second), 5),
		metrics:   getMetrics(),
	}
	for _, opt := range opts {
		opt(b)
	}
	assert.That(b.capacity > 0, "bus capacity must be positive")
	b.queue = make(chan event.Notification, b.capacity)

	go b.dispatch()

	glog.V(1).Infof("bus %s started, capacity: %d, overflow: %s",
		b.name, b.capacity, b.overflow)
	return b
}

func (b *Bus) Name() string {
	return b.name
}

func (b *Bus) Capacity() int {
	return b.capacity
}

func (b *Bus) Overflow() Overflow {
	return b.overflow
}

// Closing returns a channel which is closed when Close starts.
func (b *Bus) Closing() <-chan struct{} {
	return b.closing
}

func (b *Bus) isClosing() bool {
	select {
	case <-b.closing:
		return true
	default:
		return false
	}
}

// Len returns the number of queued notifications.
func (b *Bus) Len() int {
	return len(b.queue)
}

// Subscriptions returns the number of active subscriptions.
func (b *Bus) Subscriptions() int {
	b.lk.RLock()
	defer b.lk.RUnlock()
	return len(b.subs)
}

// Ingest queues the notification. With the Block policy it waits while the
// queue is full, until the ctx is done or the bus is closed.
func (b *Bus) Ingest(ctx context.Context, n event.Notification) error {
	b.lk.RLock()
	if b.closed {
		b.lk.RUnlock()
		return ErrClosed
	}
	b.ingesting.Add(1)
	b.lk.RUnlock()
	defer b.ingesting.Done()

	if b.overflow == DropOldest {
		b.pushDropOldest(n)
		return nil
	}

	select {
	case b.queue <- n:
		b.accepted()
		return nil
	default:
	}
	glog.V(3).Infof("bus %s full, waiting for room for %s/%s", b.name,
		b.label(n.Tenant), n.Topic)

	select {
	case b.queue <- n:
		b.accepted()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.closing:
		return ErrClosed
	}
}

func (b *Bus) pushDropOldest(n event.Notification) {
	for {
		select {
		case b.queue <- n:
			b.accepted()
			return
		default:
		}
		select {
		case old := <-b.queue:
			b.metrics.dropped.WithLabelValues(b.name, reasonOverflow).Inc()
			b.metrics.queued.WithLabelValues(b.name).Dec()
			glog.Warningf("bus %s full, dropped oldest: %s/%s", b.name,
				b.label(old.Tenant), old.Topic)
		default:
		}
	}
}

func (b *Bus) accepted() {
	b.metrics.ingested.WithLabelValues(b.name).Inc()
	b.metrics.queued.WithLabelValues(b.name).Inc()
}

// Subscribe adds a subscription. The handler receives the events ingested
// after Subscribe has returned.
func (b *Bus) Subscribe(filter Filter, handler Handler) (*Subscription, error) {
	assert.That(handler != nil, "handler is nil")

	s := &Subscription{
		id:      utils.UUID(),
		filter:  filter.normalize(),
		handler: handler,
		bus:     b,
		done:    make(chan struct{}),
	}

	b.lk.Lock()
	defer b.lk.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	b.subs = append(b.subs, s)
	b.metrics.subscriptions.WithLabelValues(b.name).Inc()

	glog.V(3).Infof("bus %s subscribe %s %s", b.name, s.id, s.filter)
	return s, nil
}

func (b *Bus) remove(s *Subscription) {
	b.lk.Lock()
	defer b.lk.Unlock()
	for i, sub := range b.subs {
		if sub == s {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			b.metrics.subscriptions.WithLabelValues(b.name).Dec()
			glog.V(3).Infof("bus %s unsubscribe %s", b.name, s.id)
			return
		}
	}
}

// Close stops the bus and waits until the dispatch goroutine has finished.
// Queued notifications are discarded and all the subscriptions are
// cancelled. Close can be called many times. A handler must use Shutdown
// instead, Close would wait for the handler itself.
func (b *Bus) Close() error {
	b.Shutdown()
	<-b.stopped
	return nil
}

// Shutdown starts closing the bus and returns without waiting. It can be
// called from a handler: the current handler call is the last one.
func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.lk.Lock()
		b.closed = true
		b.lk.Unlock()

		close(b.closing)
		glog.V(1).Infof("bus %s closing", b.name)
	})
}

// Stopped returns a channel which is closed when the bus is fully closed.
func (b *Bus) Stopped() <-chan struct{} {
	return b.stopped
}

func (b *Bus) dispatch() {
	defer b.finish()
	for {
		select {
		case <-b.closing:
			return
		default:
		}
		select {
		case n := <-b.queue:
			b.metrics.queued.WithLabelValues(b.name).Dec()
			b.process(n)
		case <-b.closing:
			return
		}
	}
}

func (b *Bus) finish() {
	defer close(b.stopped)

	b.ingesting.Wait()
	leftovers := 0
	for {
		select {
		case <-b.queue:
			leftovers++
			continue
		default:
		}
		break
	}
	if leftovers > 0 {
		b.metrics.dropped.WithLabelValues(b.name, reasonClosed).Add(float64(leftovers))
		b.metrics.queued.WithLabelValues(b.name).Sub(float64(leftovers))
		glog.Warningf("bus %s closed, %d notifications discarded", b.name, leftovers)
	}

	b.lk.RLock()
	subs := append([]*Subscription(nil), b.subs...)
	b.lk.RUnlock()
	for _, s := range subs {
		s.Cancel()
	}
	glog.V(1).Infof("bus %s closed", b.name)
}

func (b *Bus) process(n event.Notification) {
	if event.IsKeepalive(n) {
		b.metrics.keepalives.WithLabelValues(b.name).Inc()
		glog.V(5).Infoln("bus", b.name, "keepalive from", b.label(n.Tenant))
		return
	}
	ev, err := event.Decode(n)
	if err != nil {
		b.metrics.decodeErrors.WithLabelValues(b.name, n.Topic).Inc()
		b.metrics.dropped.WithLabelValues(b.name, reasonDecode).Inc()
		if b.decodeLog.Allow() {
			glog.Warningf("bus %s dropped notification from %s: %v", b.name,
				b.label(n.Tenant), err)
		}
		return
	}
	glog.V(3).Infof("bus %s event %s/%s %s", b.name, b.label(ev.Tenant),
		ev.Topic, ev.Kind())

	b.lk.RLock()
	subs := append([]*Subscription(nil), b.subs...)
	b.lk.RUnlock()

	for _, s := range subs {
		if b.isClosing() {
			return
		}
		if s.Cancelled() || !s.filter.Match(ev) {
			continue
		}
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s *Subscription, ev event.Event) {
	start := time.Now()
	err := s.deliver(ev)
	if elapsed := time.Since(start); elapsed > b.slow {
		glog.Warningf("bus %s slow subscription %s: %v for %s", b.name, s.id,
			elapsed, ev)
	}
	if err != nil {
		b.metrics.handlerErrors.WithLabelValues(b.name).Inc()
		glog.Errorln("bus", b.name, err)
		return
	}
	b.metrics.delivered.WithLabelValues(b.name).Inc()
}

func (b *Bus) label(id string) string {
	return tenant.Label(b.names, id)
}
