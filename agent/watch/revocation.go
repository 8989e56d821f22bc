package watch

import (
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
)

const (
	Revoked  Milestone = "REVOKED"
	Notified Milestone = "NOTIFIED"
)

// NewRevocation returns a watcher for the issuer side of a revocation.
// REVOKED comes from the revocation record and CREDENTIAL_REVOKED from the
// exchange record, in either order. Correlate with the issuer's credential
// exchange id. The watcher is done when both are reached.
func NewRevocation(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role: string(record.Issuer),
		kinds: []record.Kind{
			record.CredentialRevocationKind,
			record.CredentialExchangeKind,
		},
		milestones: []milestone{
			{name: Revoked, match: func(p event.Payload) bool {
				r, ok := p.(record.CredentialRevocation)
				return ok && r.State == record.RevocationRevoked
			}, terminal: true},
			{name: CredentialRevoked, match: credential(record.Issuer, record.CredentialRevoked),
				terminal: true},
		},
		terminalAll: true,
	}, opts...)
}

// NewHolderRevocation returns a watcher for the revocation notification the
// holder receives. Correlate with record.RevocationThreadID.
func NewHolderRevocation(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role:  string(record.Holder),
		kinds: []record.Kind{record.RevocationNotificationKind},
		milestones: []milestone{
			{name: Notified, match: func(p event.Payload) bool {
				_, ok := p.(record.RevocationNotification)
				return ok
			}, terminal: true},
		},
	}, opts...)
}
