package event

import (
	"errors"
	"flag"
	"os"
	"testing"

	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = flag.Set("logtostderr", "true")
	os.Exit(m.Run())
}

func TestLookup(t *testing.T) {
	k, ok := Lookup(TopicConnections)
	assert.True(t, ok)
	assert.Equal(t, record.ConnectionKind, k)

	k, ok = Lookup(TopicIssuerCredRev)
	assert.True(t, ok)
	assert.Equal(t, record.CredentialRevocationKind, k)

	_, ok = Lookup("no_such_topic")
	assert.False(t, ok)

	topics := Topics()
	assert.Len(t, topics, len(registry))
	assert.IsIncreasing(t, topics)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		n       Notification
		kind    record.Kind
		wantErr error
	}{
		{"connection", Notification{"w1", TopicConnections,
			[]byte(`{"connection_id":"c1","state":"active"}`)},
			record.ConnectionKind, nil},
		{"credential", Notification{"", TopicIssueCredential,
			[]byte(`{"credential_exchange_id":"x","role":"issuer","state":"offer_sent"}`)},
			record.CredentialExchangeKind, nil},
		{"settings", Notification{"w1", TopicSettings,
			[]byte(`{"default_label":"Bob"}`)},
			record.SettingsKind, nil},
		{"unknown topic", Notification{"w1", "nope", []byte(`{}`)},
			record.UnknownKind, ErrUnknownTopic},
		{"empty", Notification{"w1", TopicConnections, nil},
			record.UnknownKind, ErrMalformed},
		{"not json", Notification{"w1", TopicConnections, []byte(`{"connection_id":`)},
			record.UnknownKind, ErrMalformed},
		{"array", Notification{"w1", TopicConnections, []byte(`[1,2]`)},
			record.UnknownKind, ErrMalformed},
		{"wrong field type", Notification{"w1", TopicConnections,
			[]byte(`{"connection_id":12}`)},
			record.UnknownKind, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode(tt.n)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ev.Kind())
			assert.Equal(t, tt.n.Tenant, ev.Tenant)
			assert.Equal(t, tt.n.Topic, ev.Topic)
		})
	}
}

func TestDecode_typed(t *testing.T) {
	ev, err := Decode(Notification{
		Tenant:  "w1",
		Topic:   TopicPresentProof,
		Payload: []byte(`{"presentation_exchange_id":"p1","thread_id":"t1","role":"verifier","state":"verified","verified":"true"}`),
	})
	require.NoError(t, err)
	pres, ok := ev.Payload.(record.PresentationExchange)
	require.True(t, ok)
	assert.Equal(t, "p1", pres.PresentationExchangeID)
	verified, known := pres.Outcome()
	assert.True(t, known)
	assert.True(t, verified)
	assert.Equal(t, record.Keys{Exchange: "p1", Thread: "t1"}, ev.Keys())
	assert.Equal(t, "w1/present_proof(PresentationExchange)", ev.String())

	ev, err = Decode(Notification{Topic: TopicSettings, Payload: []byte(`{}`)})
	require.NoError(t, err)
	assert.True(t, ev.Keys().IsZero())
}

func TestIsKeepalive(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want bool
	}{
		{"nil payload", Notification{Topic: TopicPing}, true},
		{"null", Notification{Topic: TopicPing, Payload: []byte(`null`)}, true},
		{"empty object", Notification{Topic: TopicPing, Payload: []byte(`{}`)}, true},
		{"real ping", Notification{Topic: TopicPing,
			Payload: []byte(`{"connection_id":"c1","state":"received"}`)}, false},
		{"other topic", Notification{Topic: TopicConnections}, false},
		{"unknown topic", Notification{Topic: "keepalive"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKeepalive(tt.n))
		})
	}
}
