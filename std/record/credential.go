package record

import "encoding/json"

type CredentialRole string

const (
	Issuer CredentialRole = "issuer"
	Holder CredentialRole = "holder"
)

type CredentialState string

const (
	CredentialProposalSent      CredentialState = "proposal_sent"
	CredentialProposalReceived  CredentialState = "proposal_received"
	CredentialOfferSent         CredentialState = "offer_sent"
	CredentialOfferReceived     CredentialState = "offer_received"
	CredentialRequestSent       CredentialState = "request_sent"
	CredentialRequestReceived   CredentialState = "request_received"
	CredentialIssued            CredentialState = "credential_issued"
	CredentialReceived          CredentialState = "credential_received"
	CredentialAcked             CredentialState = "credential_acked"
	CredentialRevoked           CredentialState = "credential_revoked"
	CredentialAbandoned         CredentialState = "abandoned"
	CredentialExchangeDeleted   CredentialState = "deleted"
	CredentialExchangeUnchanged CredentialState = ""
)

// CredentialExchange is the issue-credential 1.0 exchange record. The same
// exchange has a different CredentialExchangeID at the issuer and at the
// holder; ThreadID is shared by both.
type CredentialExchange struct {
	CredentialExchangeID   string          `json:"credential_exchange_id"`
	ConnectionID           string          `json:"connection_id,omitempty"`
	ThreadID               string          `json:"thread_id,omitempty"`
	ParentThreadID         string          `json:"parent_thread_id,omitempty"`
	Initiator              string          `json:"initiator,omitempty"`
	Role                   CredentialRole  `json:"role"`
	State                  CredentialState `json:"state"`
	CredentialDefinitionID string          `json:"credential_definition_id,omitempty"`
	SchemaID               string          `json:"schema_id,omitempty"`
	CredentialProposalDict json.RawMessage `json:"credential_proposal_dict,omitempty"`
	CredentialOffer        json.RawMessage `json:"credential_offer,omitempty"`
	CredentialRequest      json.RawMessage `json:"credential_request,omitempty"`
	Credential             json.RawMessage `json:"credential,omitempty"`
	CredentialID           string          `json:"credential_id,omitempty"`
	RevocRegID             string          `json:"revoc_reg_id,omitempty"`
	RevocationID           string          `json:"revocation_id,omitempty"`
	AutoOffer              bool            `json:"auto_offer,omitempty"`
	AutoIssue              bool            `json:"auto_issue,omitempty"`
	AutoRemove             bool            `json:"auto_remove,omitempty"`
	ErrorMsg               string          `json:"error_msg,omitempty"`
	CreatedAt              string          `json:"created_at,omitempty"`
	UpdatedAt              string          `json:"updated_at,omitempty"`
}

func (CredentialExchange) Kind() Kind { return CredentialExchangeKind }

func (c CredentialExchange) Keys() Keys {
	return Keys{
		Exchange:   c.CredentialExchangeID,
		Connection: c.ConnectionID,
		Thread:     c.ThreadID,
	}
}

// Is tells if the record is in the given role and state.
func (c CredentialExchange) Is(role CredentialRole, state CredentialState) bool {
	return c.Role == role && c.State == state
}

// CredentialStateV2 is the state of the issue-credential 2.0 protocol.
type CredentialStateV2 string

const (
	CredentialV2ProposalSent     CredentialStateV2 = "proposal-sent"
	CredentialV2ProposalReceived CredentialStateV2 = "proposal-received"
	CredentialV2OfferSent        CredentialStateV2 = "offer-sent"
	CredentialV2OfferReceived    CredentialStateV2 = "offer-received"
	CredentialV2RequestSent      CredentialStateV2 = "request-sent"
	CredentialV2RequestReceived  CredentialStateV2 = "request-received"
	CredentialV2Issued           CredentialStateV2 = "credential-issued"
	CredentialV2Received         CredentialStateV2 = "credential-received"
	CredentialV2Done             CredentialStateV2 = "done"
	CredentialV2Revoked          CredentialStateV2 = "credential-revoked"
	CredentialV2Abandoned        CredentialStateV2 = "abandoned"
)

type CredentialExchangeV2 struct {
	CredExID     string            `json:"cred_ex_id"`
	ConnectionID string            `json:"connection_id,omitempty"`
	ThreadID     string            `json:"thread_id,omitempty"`
	Initiator    string            `json:"initiator,omitempty"`
	Role         CredentialRole    `json:"role"`
	State        CredentialStateV2 `json:"state"`
	CredPreview  json.RawMessage   `json:"cred_preview,omitempty"`
	ByFormat     json.RawMessage   `json:"by_format,omitempty"`
	AutoOffer    bool              `json:"auto_offer,omitempty"`
	AutoIssue    bool              `json:"auto_issue,omitempty"`
	ErrorMsg     string            `json:"error_msg,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
	UpdatedAt    string            `json:"updated_at,omitempty"`
}

func (CredentialExchangeV2) Kind() Kind { return CredentialExchangeV2Kind }

func (c CredentialExchangeV2) Keys() Keys {
	return Keys{Exchange: c.CredExID, Connection: c.ConnectionID, Thread: c.ThreadID}
}

// CredentialIndy is the indy format detail record of a 2.0 exchange.
type CredentialIndy struct {
	CredExIndyID        string          `json:"cred_ex_indy_id"`
	CredExID            string          `json:"cred_ex_id"`
	CredIDStored        string          `json:"cred_id_stored,omitempty"`
	CredRequestMetadata json.RawMessage `json:"cred_request_metadata,omitempty"`
	RevRegID            string          `json:"rev_reg_id,omitempty"`
	CredRevID           string          `json:"cred_rev_id,omitempty"`
}

func (CredentialIndy) Kind() Kind { return CredentialIndyKind }

func (c CredentialIndy) Keys() Keys {
	return Keys{Exchange: c.CredExID}
}
