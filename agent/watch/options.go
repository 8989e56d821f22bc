package watch

import (
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
)

type config struct {
	corr     Correlation
	deferred bool
	sources  []string
	names    tenant.Names
	where    func(event.Event) bool
}

type Option func(*config)

// WithCorrelation binds the watcher from the start.
func WithCorrelation(c Correlation) Option {
	return func(cfg *config) {
		cfg.corr = c
	}
}

// Deferred makes the watcher buffer the events until Bind is called. It's
// for the watchers which must exist before the request whose response
// returns the correlation ids.
func Deferred() Option {
	return func(cfg *config) {
		cfg.deferred = true
	}
}

// WithSourceTenants makes the watcher listen to the events of the given
// wallets instead of its own.
func WithSourceTenants(ids ...string) Option {
	return func(cfg *config) {
		cfg.sources = ids
	}
}

// WithNames sets the wallet names for logging.
func WithNames(names tenant.Names) Option {
	return func(cfg *config) {
		cfg.names = names
	}
}

func where(f func(event.Event) bool) Option {
	return func(cfg *config) {
		if cfg.where == nil {
			cfg.where = f
			return
		}
		prev := cfg.where
		cfg.where = func(ev event.Event) bool {
			return prev(ev) && f(ev)
		}
	}
}
