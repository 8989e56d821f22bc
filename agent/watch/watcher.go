/*
Package watch implements the protocol state watchers. A watcher owns one bus
subscription and an ordered list of milestones. Every milestone is a
predicate over the payloads of one protocol role and a latch. The first
matching predicate signals its latch, the later matches only update the
latest payload. When a terminal milestone is reached the watcher cancels its
subscription.

The protocol drivers create their watchers before they send the request
which triggers the events, and they wait for the milestones with Await or
Require from their own goroutine.
*/
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/latch"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

// Milestone is the name of a protocol state a watcher can wait for.
type Milestone string

// Correlation is the set of identifiers the payloads must carry. Only the
// non-empty fields are compared.
type Correlation = record.Keys

// maxPending is the number of events a deferred watcher buffers before it's
// bound.
const maxPending = 64

type milestone struct {
	name     Milestone
	match    func(event.Payload) bool
	terminal bool
	latch    *latch.Latch[event.Payload]
}

// spec is the protocol specific part of a watcher.
type spec struct {
	role        string
	kinds       []record.Kind
	milestones  []milestone
	terminalAll bool
}

type Watcher struct {
	tenant      string
	role        string
	names       tenant.Names
	milestones  []*milestone
	index       map[Milestone]*milestone
	terminalAll bool
	where       func(event.Event) bool
	sub         *bus.Subscription

	lk       sync.Mutex
	corr     Correlation
	deferred bool
	bound    bool
	pending  []event.Event
}

func newWatcher(b *bus.Bus, tenantID string, s spec, opts ...Option) (w *Watcher, err error) {
	defer err2.Handle(&err, "%s watcher", s.role)

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	w = &Watcher{
		tenant:      tenantID,
		role:        s.role,
		names:       cfg.names,
		index:       make(map[Milestone]*milestone, len(s.milestones)),
		terminalAll: s.terminalAll,
		where:       cfg.where,
		corr:        cfg.corr,
		deferred:    cfg.deferred,
	}
	for i := range s.milestones {
		m := s.milestones[i]
		assert.That(w.index[m.name] == nil, "duplicate milestone %s", m.name)
		m.latch = latch.New[event.Payload]()
		w.milestones = append(w.milestones, &m)
		w.index[m.name] = &m
	}

	sources := []string{tenantID}
	if len(cfg.sources) > 0 {
		sources = cfg.sources
		glog.V(1).Infof("%s watcher of %s listens tenants: %v", w.role,
			w.label(), sources)
	}
	// handle may be called before Subscribe returns
	w.lk.Lock()
	defer w.lk.Unlock()
	w.sub = try.To1(b.Subscribe(bus.Filter{Tenants: sources, Kinds: s.kinds}, w.handle))

	glog.V(3).Infof("%s watcher %s for %s, correlation: %+v", w.role,
		w.sub.ID(), w.label(), w.corr)
	return w, nil
}

// Tenant returns the wallet id the watcher belongs to.
func (w *Watcher) Tenant() string {
	return w.tenant
}

func (w *Watcher) Role() string {
	return w.role
}

// Milestones returns the milestone names in the evaluation order.
func (w *Watcher) Milestones() []Milestone {
	names := make([]Milestone, 0, len(w.milestones))
	for _, m := range w.milestones {
		names = append(names, m.name)
	}
	return names
}

// Correlation returns the current correlation.
func (w *Watcher) Correlation() Correlation {
	w.lk.Lock()
	defer w.lk.Unlock()
	return w.corr
}

// Bind sets the correlation. A deferred watcher replays the events it has
// buffered since it was created.
func (w *Watcher) Bind(c Correlation) {
	w.lk.Lock()
	defer w.lk.Unlock()

	w.corr = c
	if !w.deferred || w.bound {
		return
	}
	w.bound = true
	pending := w.pending
	w.pending = nil
	glog.V(3).Infof("%s watcher %s bound: %+v, replaying %d", w.role,
		w.sub.ID(), c, len(pending))
	for _, ev := range pending {
		w.evaluate(ev)
	}
}

// Await waits at most timeout for the milestone. It returns the payload
// recorded when the milestone was reached. The timeout doesn't affect the
// watcher, and a zero timeout only polls.
func (w *Watcher) Await(name Milestone, timeout time.Duration) (event.Payload, bool) {
	return w.milestone(name).latch.Wait(timeout)
}

// AwaitContext waits for the milestone until the ctx is done.
func (w *Watcher) AwaitContext(ctx context.Context, name Milestone) (event.Payload, error) {
	return w.milestone(name).latch.WaitContext(ctx)
}

// Latest returns the latest payload which matched the milestone.
func (w *Watcher) Latest(name Milestone) (event.Payload, bool) {
	return w.milestone(name).latch.Wait(0)
}

// Has tells if the watcher has the milestone.
func (w *Watcher) Has(name Milestone) bool {
	_, ok := w.index[name]
	return ok
}

func (w *Watcher) Fired(name Milestone) bool {
	return w.milestone(name).latch.Signalled()
}

// Signal returns a channel which is closed when the milestone is reached.
func (w *Watcher) Signal(name Milestone) <-chan struct{} {
	return w.milestone(name).latch.Done()
}

// Cancel cancels the subscription. The milestones already reached can still
// be read.
func (w *Watcher) Cancel() {
	w.sub.Cancel()
}

func (w *Watcher) Cancelled() bool {
	return w.sub.Cancelled()
}

// Done returns a channel which is closed when the watcher is cancelled.
func (w *Watcher) Done() <-chan struct{} {
	return w.sub.Done()
}

func (w *Watcher) milestone(name Milestone) *milestone {
	m, ok := w.index[name]
	assert.That(ok, "%s watcher has no milestone %s", w.role, name)
	return m
}

func (w *Watcher) handle(ev event.Event) error {
	w.lk.Lock()
	defer w.lk.Unlock()

	if w.deferred && !w.bound {
		if len(w.pending) >= maxPending {
			glog.Warningf("%s watcher %s pending buffer full, dropping %s",
				w.role, w.sub.ID(), w.pending[0])
			w.pending = w.pending[1:]
		}
		w.pending = append(w.pending, ev)
		return nil
	}
	w.evaluate(ev)
	return nil
}

// evaluate must be called with the lock held.
func (w *Watcher) evaluate(ev event.Event) {
	if !w.corr.Matches(ev.Keys()) {
		return
	}
	if w.where != nil && !w.where(ev) {
		return
	}
	for _, m := range w.milestones {
		if !m.match(ev.Payload) {
			continue
		}
		if m.latch.Signal(ev.Payload) {
			glog.V(3).Infof("%s %s reached %s", w.label(), w.role, m.name)
		} else {
			glog.V(5).Infof("%s %s repeated %s", w.label(), w.role, m.name)
		}
		if m.terminal && w.terminated() {
			glog.V(3).Infof("%s %s watcher %s done", w.label(), w.role, w.sub.ID())
			w.sub.Cancel()
		}
		return
	}
}

func (w *Watcher) terminated() bool {
	if !w.terminalAll {
		return true
	}
	for _, m := range w.milestones {
		if m.terminal && !m.latch.Signalled() {
			return false
		}
	}
	return true
}

func (w *Watcher) label() string {
	return tenant.Label(w.names, w.tenant)
}

// AwaitAs waits for the milestone and returns its payload as T.
func AwaitAs[T event.Payload](w *Watcher, name Milestone, timeout time.Duration) (v T, ok bool) {
	p, ok := w.Await(name, timeout)
	if !ok {
		return v, false
	}
	v, ok = p.(T)
	return v, ok
}
