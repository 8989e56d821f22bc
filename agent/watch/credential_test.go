package watch

import (
	"testing"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuance_HappyPath(t *testing.T) {
	b := newBus(t)
	issuer, err := NewIssuer(b, "issuer", Deferred())
	require.NoError(t, err)
	defer issuer.Cancel()
	holder, err := NewHolder(b, "holder", Deferred())
	require.NoError(t, err)

	const thread = "thread-1"
	issuerRec := issuerRecord("i-cx", record.CredentialOfferSent)
	issuerRec.ThreadID = thread
	issuerRec.CredentialDefinitionID = "cred-def-1"
	issuer.Bind(Correlation{Exchange: "i-cx"})
	holder.Bind(Correlation{Thread: thread})

	holderRec := holderRecord("h-cx", thread, record.CredentialOfferReceived)
	holderRec.CredentialDefinitionID = "cred-def-1"

	ingest(t, b, "issuer", event.TopicIssueCredential, issuerRec)
	ingest(t, b, "holder", event.TopicIssueCredential, holderRec)
	offer, ok := AwaitAs[record.CredentialExchange](holder, OfferReceived, waitTime)
	require.True(t, ok)
	assert.False(t, issuer.Fired(RequestReceived))

	holderRec.State = record.CredentialRequestSent
	ingest(t, b, "holder", event.TopicIssueCredential, holderRec)
	issuerRec.State = record.CredentialRequestReceived
	ingest(t, b, "issuer", event.TopicIssueCredential, issuerRec)
	_, ok = issuer.Await(RequestReceived, waitTime)
	require.True(t, ok)
	assert.True(t, holder.Fired(RequestSent))
	assert.False(t, holder.Fired(CredentialReceived))

	issuerRec.State = record.CredentialIssued
	ingest(t, b, "issuer", event.TopicIssueCredential, issuerRec)
	holderRec.State = record.CredentialReceived
	ingest(t, b, "holder", event.TopicIssueCredential, holderRec)
	_, ok = holder.Await(CredentialReceived, waitTime)
	require.True(t, ok)
	assert.False(t, holder.Fired(CredentialAcked))

	holderRec.State = record.CredentialAcked
	holderRec.CredentialID = "wallet-cred-1"
	ingest(t, b, "holder", event.TopicIssueCredential, holderRec)
	issuerRec.State = record.CredentialAcked
	ingest(t, b, "issuer", event.TopicIssueCredential, issuerRec)

	acked, ok := AwaitAs[record.CredentialExchange](holder, CredentialAcked, waitTime)
	require.True(t, ok)
	assert.Equal(t, offer.CredentialExchangeID, acked.CredentialExchangeID)
	assert.Equal(t, offer.ThreadID, acked.ThreadID)
	assert.Equal(t, offer.CredentialDefinitionID, acked.CredentialDefinitionID)
	assert.Equal(t, "wallet-cred-1", acked.CredentialID)

	_, ok = issuer.Await(CredentialAcked, waitTime)
	require.True(t, ok)
	assert.True(t, issuer.Fired(CredentialIssued))

	<-holder.Done()
	assert.True(t, holder.Cancelled())
	assert.False(t, issuer.Cancelled())
}

func TestIssuer_Abandoned(t *testing.T) {
	b := newBus(t)
	w, err := NewIssuer(b, "w1", WithCorrelation(Correlation{Exchange: "cx1"}))
	require.NoError(t, err)

	ingest(t, b, "w1", event.TopicIssueCredential, issuerRecord("cx1", record.CredentialAbandoned))
	_, ok := w.Await(Abandoned, waitTime)
	require.True(t, ok)
	<-w.Done()
	assert.False(t, w.Fired(OfferSent))
}
