package watch

import (
	"testing"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presRecord(id, thread string, role record.PresentationRole, state record.PresentationState) record.PresentationExchange {
	return record.PresentationExchange{
		PresentationExchangeID: id,
		ThreadID:               thread,
		Role:                   role,
		State:                  state,
	}
}

func TestPresentation_VerificationOutcome(t *testing.T) {
	tests := []struct {
		name     string
		verified string
		want     bool
	}{
		{"verified", "true", true},
		{"not verified", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBus(t)
			verifier, err := NewVerifier(b, "verifier", WithCorrelation(Correlation{Exchange: "v-px"}))
			require.NoError(t, err)
			prover, err := NewProver(b, "prover", WithCorrelation(Correlation{Thread: "th"}))
			require.NoError(t, err)

			ingest(t, b, "verifier", event.TopicPresentProof,
				presRecord("v-px", "th", record.Verifier, record.PresentationRequestSent))
			ingest(t, b, "prover", event.TopicPresentProof,
				presRecord("p-px", "th", record.Prover, record.PresentationRequestReceived))
			ingest(t, b, "prover", event.TopicPresentProof,
				presRecord("p-px", "th", record.Prover, record.PresentationSent))
			ingest(t, b, "verifier", event.TopicPresentProof,
				presRecord("v-px", "th", record.Verifier, record.PresentationReceived))

			verified := presRecord("v-px", "th", record.Verifier, record.PresentationVerified)
			verified.Verified = tt.verified
			ingest(t, b, "verifier", event.TopicPresentProof, verified)
			// the prover's ack doesn't carry the outcome
			ingest(t, b, "prover", event.TopicPresentProof,
				presRecord("p-px", "th", record.Prover, record.PresentationAcked))

			acked, ok := AwaitAs[record.PresentationExchange](prover, PresentationAcked, waitTime)
			require.True(t, ok)
			_, known := acked.Outcome()
			assert.False(t, known)

			got, err := Outcome(verifier, waitTime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.True(t, prover.Fired(RequestReceived))
			assert.True(t, prover.Fired(PresentationSent))
			assert.True(t, verifier.Fired(PresentationReceived))
			<-prover.Done()
			<-verifier.Done()
		})
	}
}

func TestOutcome_Timeout(t *testing.T) {
	b := newBus(t)
	verifier, err := NewVerifier(b, "verifier")
	require.NoError(t, err)
	defer verifier.Cancel()

	_, err = Outcome(verifier, 0)
	var mErr *MilestoneError
	assert.ErrorAs(t, err, &mErr)
	assert.Equal(t, Verified, mErr.Milestone)
}
