package record

import "encoding/json"

type PresentationRole string

const (
	Prover   PresentationRole = "prover"
	Verifier PresentationRole = "verifier"
)

type PresentationState string

const (
	PresentationProposalSent     PresentationState = "proposal_sent"
	PresentationProposalReceived PresentationState = "proposal_received"
	PresentationRequestSent      PresentationState = "request_sent"
	PresentationRequestReceived  PresentationState = "request_received"
	PresentationSent             PresentationState = "presentation_sent"
	PresentationReceived         PresentationState = "presentation_received"
	PresentationVerified         PresentationState = "verified"
	PresentationAcked            PresentationState = "presentation_acked"
	PresentationAbandoned        PresentationState = "abandoned"
)

// PresentationExchange is the present-proof 1.0 exchange record.
//
// Verified is set only in the verifier's records. The agent does not send
// the outcome back to the prover, so the prover's presentation_acked record
// leaves it empty.
type PresentationExchange struct {
	PresentationExchangeID   string            `json:"presentation_exchange_id"`
	ConnectionID             string            `json:"connection_id,omitempty"`
	ThreadID                 string            `json:"thread_id,omitempty"`
	Initiator                string            `json:"initiator,omitempty"`
	Role                     PresentationRole  `json:"role"`
	State                    PresentationState `json:"state"`
	PresentationProposalDict json.RawMessage   `json:"presentation_proposal_dict,omitempty"`
	PresentationRequest      json.RawMessage   `json:"presentation_request,omitempty"`
	PresentationRequestDict  json.RawMessage   `json:"presentation_request_dict,omitempty"`
	Presentation             json.RawMessage   `json:"presentation,omitempty"`
	Verified                 string            `json:"verified,omitempty"`
	VerifiedMsgs             []string          `json:"verified_msgs,omitempty"`
	AutoPresent              bool              `json:"auto_present,omitempty"`
	AutoVerify               bool              `json:"auto_verify,omitempty"`
	ErrorMsg                 string            `json:"error_msg,omitempty"`
	CreatedAt                string            `json:"created_at,omitempty"`
	UpdatedAt                string            `json:"updated_at,omitempty"`
}

func (PresentationExchange) Kind() Kind { return PresentationExchangeKind }

func (p PresentationExchange) Keys() Keys {
	return Keys{
		Exchange:   p.PresentationExchangeID,
		Connection: p.ConnectionID,
		Thread:     p.ThreadID,
	}
}

func (p PresentationExchange) Is(role PresentationRole, state PresentationState) bool {
	return p.Role == role && p.State == state
}

// Outcome returns the verification result. The known is false when the
// record doesn't carry it, which is always the case for the prover.
func (p PresentationExchange) Outcome() (verified, known bool) {
	switch p.Verified {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

type PresentationStateV2 string

const (
	PresentationV2ProposalSent     PresentationStateV2 = "proposal-sent"
	PresentationV2ProposalReceived PresentationStateV2 = "proposal-received"
	PresentationV2RequestSent      PresentationStateV2 = "request-sent"
	PresentationV2RequestReceived  PresentationStateV2 = "request-received"
	PresentationV2Sent             PresentationStateV2 = "presentation-sent"
	PresentationV2Received         PresentationStateV2 = "presentation-received"
	PresentationV2Done             PresentationStateV2 = "done"
	PresentationV2Abandoned        PresentationStateV2 = "abandoned"
)

type PresentationExchangeV2 struct {
	PresExID     string              `json:"pres_ex_id"`
	ConnectionID string              `json:"connection_id,omitempty"`
	ThreadID     string              `json:"thread_id,omitempty"`
	Initiator    string              `json:"initiator,omitempty"`
	Role         PresentationRole    `json:"role"`
	State        PresentationStateV2 `json:"state"`
	ByFormat     json.RawMessage     `json:"by_format,omitempty"`
	Verified     string              `json:"verified,omitempty"`
	ErrorMsg     string              `json:"error_msg,omitempty"`
	CreatedAt    string              `json:"created_at,omitempty"`
	UpdatedAt    string              `json:"updated_at,omitempty"`
}

func (PresentationExchangeV2) Kind() Kind { return PresentationExchangeV2Kind }

func (p PresentationExchangeV2) Keys() Keys {
	return Keys{Exchange: p.PresExID, Connection: p.ConnectionID, Thread: p.ThreadID}
}
