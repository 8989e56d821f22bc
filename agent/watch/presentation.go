package watch

import (
	"time"

	"github.com/findy-network/findy-agent-hook/agent/bus"
	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
)

const (
	PresentationSent     Milestone = "PRESENTATION_SENT"
	PresentationReceived Milestone = "PRESENTATION_RECEIVED"
	PresentationAcked    Milestone = "PRESENTATION_ACKED"
	Verified             Milestone = "VERIFIED"
)

func presentation(role record.PresentationRole, state record.PresentationState) func(event.Payload) bool {
	return func(p event.Payload) bool {
		pe, ok := p.(record.PresentationExchange)
		return ok && pe.Is(role, state)
	}
}

// NewProver returns a watcher for the prover side of a presentation. Note
// that the PRESENTATION_ACKED payload doesn't tell if the proof was
// verified, only the verifier's VERIFIED payload does.
func NewProver(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role:  string(record.Prover),
		kinds: []record.Kind{record.PresentationExchangeKind},
		milestones: []milestone{
			{name: RequestReceived, match: presentation(record.Prover, record.PresentationRequestReceived)},
			{name: PresentationSent, match: presentation(record.Prover, record.PresentationSent)},
			{name: PresentationAcked, match: presentation(record.Prover, record.PresentationAcked), terminal: true},
			{name: Abandoned, match: presentation(record.Prover, record.PresentationAbandoned), terminal: true},
		},
	}, opts...)
}

// NewVerifier returns a watcher for the verifier side of a presentation.
func NewVerifier(b *bus.Bus, tenantID string, opts ...Option) (*Watcher, error) {
	return newWatcher(b, tenantID, spec{
		role:  string(record.Verifier),
		kinds: []record.Kind{record.PresentationExchangeKind},
		milestones: []milestone{
			{name: RequestSent, match: presentation(record.Verifier, record.PresentationRequestSent)},
			{name: PresentationReceived, match: presentation(record.Verifier, record.PresentationReceived)},
			{name: Verified, match: presentation(record.Verifier, record.PresentationVerified), terminal: true},
			{name: Abandoned, match: presentation(record.Verifier, record.PresentationAbandoned), terminal: true},
		},
	}, opts...)
}

// Outcome waits for VERIFIED and returns the verification result of the
// verifier's record.
func Outcome(verifier *Watcher, timeout time.Duration) (verified bool, err error) {
	pe, err := RequireAs[record.PresentationExchange](verifier, Verified, timeout)
	if err != nil {
		return false, err
	}
	verified, _ = pe.Outcome()
	return verified, nil
}
