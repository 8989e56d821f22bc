package watch

import (
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
)

const (
	Invitation Milestone = "INVITATION"
	Request    Milestone = "REQUEST"
	Response   Milestone = "RESPONSE"
	Active     Milestone = "ACTIVE"
	Abandoned  Milestone = "ABANDONED"
)

// NewConnection returns a watcher for the connection protocol of the wallet.
// The role selects the side of the protocol, record.UnknownConnectionRole
// accepts both. Terminal milestones are ACTIVE and ABANDONED.
func NewConnection(b *bus.Bus, tenantID string, role record.ConnectionRole, opts ...Option) (*Watcher, error) {
	state := func(s record.ConnectionState) func(event.Payload) bool {
		return func(p event.Payload) bool {
			c, ok := p.(record.Connection)
			if !ok {
				return false
			}
			if role != record.UnknownConnectionRole && c.Role() != record.UnknownConnectionRole &&
				c.Role() != role {
				return false
			}
			return c.Progress() == s
		}
	}
	name := "connection"
	if role != record.UnknownConnectionRole {
		name = string(role)
	}
	return newWatcher(b, tenantID, spec{
		role:  name,
		kinds: []record.Kind{record.ConnectionKind},
		milestones: []milestone{
			{name: Invitation, match: state(record.ConnectionInvitation)},
			{name: Request, match: state(record.ConnectionRequest)},
			{name: Response, match: state(record.ConnectionResponse)},
			{name: Active, match: state(record.ConnectionActive), terminal: true},
			{name: Abandoned, match: state(record.ConnectionAbandoned), terminal: true},
		},
	}, opts...)
}

// WithTheirLabel accepts only the connection records with the counterparty
// label.
func WithTheirLabel(label string) Option {
	return where(func(ev event.Event) bool {
		c, ok := ev.Payload.(record.Connection)
		return !ok || c.TheirLabel == "" || c.TheirLabel == label
	})
}
