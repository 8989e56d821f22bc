/*
Package protocol includes the protocol drivers. A driver runs one protocol
between two wallets of the external agent: it sends the requests with the
admin client and waits for the milestones of the protocol watchers between
them.

The watchers are always created before the request which triggers their
events, and they are bound to the ids of the request's response. This way no
notification is lost even if the agent sends it before the response.
*/
package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/admin"
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/watch"
	"github.com/lainio/err2/assert"
)

// DefaultTimeout is the milestone timeout when Config has none.
const DefaultTimeout = 30 * time.Second

// Config is what every driver needs.
type Config struct {
	Client admin.Client
	Bus    *bus.Bus
	Names  tenant.Names

	// Timeout is for one milestone, DefaultTimeout if not set.
	Timeout time.Duration
}

// Party is one wallet taking part in a protocol.
type Party struct {
	Tenant string
	Label  string
}

func (c Config) Validate() {
	assert.That(c.Client != nil, "admin client is missing")
	assert.That(c.Bus != nil, "bus is missing")
}

func (c Config) AwaitTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Deferred returns the options of a watcher which is bound after the
// request.
func (c Config) Deferred(opts ...watch.Option) []watch.Option {
	return append([]watch.Option{watch.Deferred(), watch.WithNames(c.Names)}, opts...)
}

// Bound returns the options of a watcher with the known correlation.
func (c Config) Bound(corr watch.Correlation, opts ...watch.Option) []watch.Option {
	return append([]watch.Option{watch.WithCorrelation(corr), watch.WithNames(c.Names)}, opts...)
}

// Await waits for the milestone, but fails immediately when the protocol
// is abandoned.
func (c Config) Await(ctx context.Context, w *watch.Watcher, name watch.Milestone) (event.Payload, error) {
	timeout := c.AwaitTimeout()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var abandoned <-chan struct{}
	if w.Has(watch.Abandoned) {
		abandoned = w.Signal(watch.Abandoned)
	}
	select {
	case <-w.Signal(name):
		p, _ := w.Latest(name)
		return p, nil
	case <-abandoned:
		p, _ := w.Latest(watch.Abandoned)
		return nil, &AbandonedError{Tenant: tenant.Label(c.Names, w.Tenant()),
			Role: w.Role(), Milestone: name, Payload: p}
	case <-timer.C:
		p, err := watch.Require(w, name, 0)
		if me, ok := err.(*watch.MilestoneError); ok {
			me.Timeout = timeout
		}
		return p, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AwaitAs is Config.Await with a typed payload.
func AwaitAs[T event.Payload](ctx context.Context, c Config, w *watch.Watcher, name watch.Milestone) (v T, err error) {
	p, err := c.Await(ctx, w, name)
	if err != nil {
		return v, err
	}
	v, ok := p.(T)
	if !ok {
		return v, fmt.Errorf("%s: unexpected payload %T", name, p)
	}
	return v, nil
}

// AbandonedError tells that the other party, or the agent, abandoned the
// protocol while we were waiting for the milestone.
type AbandonedError struct {
	Tenant    string
	Role      string
	Milestone watch.Milestone
	Payload   event.Payload
}

func (e *AbandonedError) Error() string {
	return fmt.Sprintf("wallet %s as %s: abandoned while waiting %s",
		e.Tenant, e.Role, e.Milestone)
}

// Cancel cancels the watchers. It's meant to be deferred.
func Cancel(ws ...*watch.Watcher) {
	for _, w := range ws {
		if w != nil {
			w.Cancel()
		}
	}
}
