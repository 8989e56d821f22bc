package bus

import (
	"strings"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/samber/lo"
)

// Filter selects the events of a subscription. An event matches when its
// wallet is in Tenants and its payload kind is in Kinds. An empty set
// matches anything. Note that the base wallet is the empty tenant id, so
// Tenants: []string{""} selects only the base wallet.
type Filter struct {
	Tenants []string
	Kinds   []record.Kind
}

// ForTenant returns a filter for one wallet and the given kinds.
func ForTenant(tenant string, kinds ...record.Kind) Filter {
	return Filter{Tenants: []string{tenant}, Kinds: kinds}
}

func (f Filter) Match(ev event.Event) bool {
	if len(f.Tenants) > 0 && !lo.Contains(f.Tenants, ev.Tenant) {
		return false
	}
	if len(f.Kinds) > 0 && !lo.Contains(f.Kinds, ev.Kind()) {
		return false
	}
	return true
}

func (f Filter) normalize() Filter {
	return Filter{Tenants: lo.Uniq(f.Tenants), Kinds: lo.Uniq(f.Kinds)}
}

func (f Filter) String() string {
	var b strings.Builder
	b.WriteString("tenants:")
	if len(f.Tenants) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(f.Tenants, ","))
	}
	b.WriteString(" kinds:")
	if len(f.Kinds) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(lo.Map(f.Kinds, func(k record.Kind, _ int) string {
			return k.String()
		}), ","))
	}
	return b.String()
}
