/*
Package event is the topic registry and the decoder of the notifications the
external agent pushes. A notification carries a topic, an optional wallet id
and a JSON payload. The registry is static and read-only after package init,
which is why it can be shared by every bus without locking.
*/
package event

import (
	"sort"

	"github.com/findy-network/findy-agent-hook/std/record"
)

const (
	TopicConnections            = "connections"
	TopicIssueCredential        = "issue_credential"
	TopicIssueCredentialV2      = "issue_credential_v2_0"
	TopicIssueCredentialV2Indy  = "issue_credential_v2_0_indy"
	TopicPresentProof           = "present_proof"
	TopicPresentProofV2         = "present_proof_v2_0"
	TopicRevocationRegistry     = "revocation_registry"
	TopicIssuerCredRev          = "issuer_cred_rev"
	TopicRevocationNotification = "revocation-notification"
	TopicBasicMessages          = "basicmessages"
	TopicPing                   = "ping"
	TopicProblemReport          = "problem_report"
	TopicOutOfBand              = "out_of_band"
	TopicMediation              = "mediation"
	TopicEndorseTransaction     = "endorse_transaction"
	TopicSettings               = "settings"
)

type entry struct {
	kind   record.Kind
	decode func([]byte) (Payload, error)
}

var registry = map[string]entry{
	TopicConnections:            {record.ConnectionKind, decoder[record.Connection]()},
	TopicIssueCredential:        {record.CredentialExchangeKind, decoder[record.CredentialExchange]()},
	TopicIssueCredentialV2:      {record.CredentialExchangeV2Kind, decoder[record.CredentialExchangeV2]()},
	TopicIssueCredentialV2Indy:  {record.CredentialIndyKind, decoder[record.CredentialIndy]()},
	TopicPresentProof:           {record.PresentationExchangeKind, decoder[record.PresentationExchange]()},
	TopicPresentProofV2:         {record.PresentationExchangeV2Kind, decoder[record.PresentationExchangeV2]()},
	TopicRevocationRegistry:     {record.RevocationRegistryKind, decoder[record.RevocationRegistry]()},
	TopicIssuerCredRev:          {record.CredentialRevocationKind, decoder[record.CredentialRevocation]()},
	TopicRevocationNotification: {record.RevocationNotificationKind, decoder[record.RevocationNotification]()},
	TopicBasicMessages:          {record.BasicMessageKind, decoder[record.BasicMessage]()},
	TopicPing:                   {record.PingKind, decoder[record.Ping]()},
	TopicProblemReport:          {record.ProblemReportKind, decoder[record.ProblemReport]()},
	TopicOutOfBand:              {record.OutOfBandKind, decoder[record.OutOfBand]()},
	TopicMediation:              {record.MediationKind, decoder[record.Mediation]()},
	TopicEndorseTransaction:     {record.EndorseTransactionKind, decoder[record.EndorseTransaction]()},
	TopicSettings:               {record.SettingsKind, decoder[record.Settings]()},
}

// keepaliveTopics are the topics the agent uses for its keepalives as well.
var keepaliveTopics = map[string]struct{}{
	TopicPing: {},
}

// Lookup returns the payload kind of the topic.
func Lookup(topic string) (record.Kind, bool) {
	e, ok := registry[topic]
	return e.kind, ok
}

// Topics returns the registered topics in sorted order.
func Topics() []string {
	topics := make([]string, 0, len(registry))
	for topic := range registry {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}
