package bus

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/findy-network/findy-agent-hook/agent/event"
)

// Handler is called for every matching event. The handlers of one bus are
// called one at a time in the ingestion order. A handler must not call
// Ingest of its own bus when the bus uses the Block policy.
type Handler func(ev event.Event) error

// SubscriberError is a failed, or panicked, handler call. It's only logged,
// the bus and the other subscriptions aren't affected.
type SubscriberError struct {
	SubscriptionID string
	Err            error
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscription %s: %v", e.SubscriptionID, e.Err)
}

func (e *SubscriberError) Unwrap() error {
	return e.Err
}

type Subscription struct {
	id      string
	filter  Filter
	handler Handler
	bus     *Bus

	cancelled atomic.Bool
	delivered atomic.Uint64
	once      sync.Once
	done      chan struct{}
}

func (s *Subscription) ID() string {
	return s.id
}

func (s *Subscription) Filter() Filter {
	return s.filter
}

// Cancel stops the deliveries to the subscription. It can be called many
// times and from the handler itself.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.cancelled.Store(true)
		s.bus.remove(s)
		close(s.done)
	})
}

func (s *Subscription) Cancelled() bool {
	return s.cancelled.Load()
}

// Done returns a channel which is closed when the subscription is cancelled.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Delivered returns the number of handler calls.
func (s *Subscription) Delivered() uint64 {
	return s.delivered.Load()
}

func (s *Subscription) deliver(ev event.Event) (err error) {
	if s.Cancelled() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &SubscriberError{SubscriptionID: s.id, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	s.delivered.Add(1)
	if err := s.handler(ev); err != nil {
		return &SubscriberError{SubscriptionID: s.id, Err: err}
	}
	return nil
}
