// Package watch implements the command which connects to the agent's
// websocket channel and prints the events matching the given filter.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/trans"
	"github.com/findy-network/findy-agent-hook/cmds"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/findy-network/findy-common-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/samber/lo"
)

type Cmd struct {
	cmds.BusCmd
	cmds.WsCmd

	Tenants []string
	Topics  []string
	MaxIdle time.Duration

	// Count stops the watching after this many events, 0 is no limit.
	Count int
}

func (c Cmd) Validate() error {
	if err := c.WsCmd.Validate(); err != nil {
		return err
	}
	if c.Count < 0 {
		return errors.New("count cannot be negative")
	}
	if _, err := kinds(c.Topics); err != nil {
		return err
	}
	return c.BusCmd.Validate()
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return nil, c.Run(ctx, w)
}

// Run prints the events as lines of "<tenant> <topic> <payload JSON>" until
// ctx is done or Count events are printed.
func (c Cmd) Run(ctx context.Context, w io.Writer) (err error) {
	defer err2.Handle(&err, "watch")

	b, names := try.To2(c.NewBus("watch"))
	defer b.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	filter := bus.Filter{
		Tenants: c.Tenants,
		Kinds:   try.To1(kinds(c.Topics)),
	}
	var lk sync.Mutex
	printed := 0
	_ = try.To1(b.Subscribe(filter, func(ev event.Event) error {
		lk.Lock()
		defer lk.Unlock()
		if c.Count > 0 && printed >= c.Count {
			return nil
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", tenant.Label(names, ev.Tenant),
			ev.Topic, dto.ToJSONBytes(ev.Payload)); err != nil {
			return err
		}
		printed++
		if c.Count > 0 && printed >= c.Count {
			cancel()
		}
		return nil
	}))

	l := trans.New(trans.Config{
		URL:     c.URL,
		APIKey:  c.APIKey,
		Token:   c.Token,
		MaxIdle: c.MaxIdle,
	}, b)
	return l.Run(ctx)
}

func kinds(topics []string) (ks []record.Kind, err error) {
	for _, topic := range topics {
		if _, ok := event.Lookup(topic); !ok {
			return nil, fmt.Errorf("%w: %q", event.ErrUnknownTopic, topic)
		}
	}
	return lo.Map(topics, func(topic string, _ int) record.Kind {
		k, _ := event.Lookup(topic)
		return k
	}), nil
}
