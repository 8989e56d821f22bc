package watch

import (
	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
)

const (
	OfferSent          Milestone = "OFFER_SENT"
	OfferReceived      Milestone = "OFFER_RECEIVED"
	RequestSent        Milestone = "REQUEST_SENT"
	RequestReceived    Milestone = "REQUEST_RECEIVED"
	CredentialIssued   Milestone = "CREDENTIAL_ISSUED"
	CredentialReceived Milestone = "CREDENTIAL_RECEIVED"
	CredentialAcked    Milestone = "CREDENTIAL_ACKED"
	CredentialRevoked  Milestone = "CREDENTIAL_REVOKED"
)

func credential(role record.CredentialRole, state record.CredentialState) func(event.Payload) bool {
	return func(p event.Payload) bool {
		c, ok := p.(record.CredentialExchange)
		return ok && c.Is(role, state)
	}
}

// NewIssuer returns a watcher for the issuer side of a credential exchange.
// It stays until the credential is revoked or the exchange is abandoned.
func NewIssuer(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role:  string(record.Issuer),
		kinds: []record.Kind{record.CredentialExchangeKind},
		milestones: []milestone{
			{name: OfferSent, match: credential(record.Issuer, record.CredentialOfferSent)},
			{name: RequestReceived, match: credential(record.Issuer, record.CredentialRequestReceived)},
			{name: CredentialIssued, match: credential(record.Issuer, record.CredentialIssued)},
			{name: CredentialAcked, match: credential(record.Issuer, record.CredentialAcked)},
			{name: CredentialRevoked, match: credential(record.Issuer, record.CredentialRevoked), terminal: true},
			{name: Abandoned, match: credential(record.Issuer, record.CredentialAbandoned), terminal: true},
		},
	}, opts...)
}

// NewHolder returns a watcher for the holder side of a credential exchange.
// The holder's exchange id differs from the issuer's, use the thread id to
// correlate.
func NewHolder(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role:  string(record.Holder),
		kinds: []record.Kind{record.CredentialExchangeKind},
		milestones: []milestone{
			{name: OfferReceived, match: credential(record.Holder, record.CredentialOfferReceived)},
			{name: RequestSent, match: credential(record.Holder, record.CredentialRequestSent)},
			{name: CredentialReceived, match: credential(record.Holder, record.CredentialReceived)},
			{name: CredentialAcked, match: credential(record.Holder, record.CredentialAcked), terminal: true},
			{name: Abandoned, match: credential(record.Holder, record.CredentialAbandoned), terminal: true},
		},
	}, opts...)
}
