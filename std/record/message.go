package record

import (
	"encoding/json"

	"github.com/findy-network/findy-agent-hook/std/decorator"
)

type BasicMessage struct {
	ConnectionID string `json:"connection_id"`
	MessageID    string `json:"message_id,omitempty"`
	Content      string `json:"content"`
	State        string `json:"state,omitempty"`
	SentTime     string `json:"sent_time,omitempty"`
}

func (BasicMessage) Kind() Kind { return BasicMessageKind }

func (m BasicMessage) Keys() Keys {
	return Keys{Connection: m.ConnectionID}
}

// Ping is the trust ping record. Keepalives use the same topic with an empty
// payload and they never reach the decoder.
type Ping struct {
	Comment      string `json:"comment,omitempty"`
	ConnectionID string `json:"connection_id,omitempty"`
	Responded    bool   `json:"responded,omitempty"`
	State        string `json:"state,omitempty"`
	ThreadID     string `json:"thread_id,omitempty"`
}

func (Ping) Kind() Kind { return PingKind }

func (p Ping) Keys() Keys {
	return Keys{Connection: p.ConnectionID, Thread: p.ThreadID}
}

type Description struct {
	En   string `json:"en,omitempty"`
	Code string `json:"code,omitempty"`
}

type ProblemReport struct {
	Type        string            `json:"@type,omitempty"`
	ID          string            `json:"@id,omitempty"`
	Description Description       `json:"description"`
	Thread      *decorator.Thread `json:"~thread,omitempty"`
}

func (ProblemReport) Kind() Kind { return ProblemReportKind }

func (p ProblemReport) Keys() Keys {
	return Keys{Thread: decorator.ThreadID(p.Thread)}
}

type OutOfBand struct {
	OobID        string          `json:"oob_id"`
	State        string          `json:"state"`
	InviMsgID    string          `json:"invi_msg_id,omitempty"`
	ConnectionID string          `json:"connection_id,omitempty"`
	Role         string          `json:"role,omitempty"`
	Invitation   json.RawMessage `json:"invitation,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

func (OutOfBand) Kind() Kind { return OutOfBandKind }

func (o OutOfBand) Keys() Keys {
	return Keys{Exchange: o.InviMsgID, Connection: o.ConnectionID}
}

type Mediation struct {
	MediationID  string   `json:"mediation_id"`
	State        string   `json:"state"`
	Role         string   `json:"role,omitempty"`
	ConnectionID string   `json:"connection_id,omitempty"`
	RoutingKeys  []string `json:"routing_keys,omitempty"`
	Endpoint     string   `json:"endpoint,omitempty"`
}

func (Mediation) Kind() Kind { return MediationKind }

func (m Mediation) Keys() Keys {
	return Keys{Exchange: m.MediationID, Connection: m.ConnectionID}
}

type EndorseTransaction struct {
	TransactionID string          `json:"transaction_id"`
	State         string          `json:"state"`
	ConnectionID  string          `json:"connection_id,omitempty"`
	ThreadID      string          `json:"thread_id,omitempty"`
	Messages      json.RawMessage `json:"messages_attach,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

func (EndorseTransaction) Kind() Kind { return EndorseTransactionKind }

func (e EndorseTransaction) Keys() Keys {
	return Keys{Exchange: e.TransactionID, Connection: e.ConnectionID, Thread: e.ThreadID}
}

// Settings is the free form settings object of the wallet.
type Settings map[string]json.RawMessage

func (Settings) Kind() Kind { return SettingsKind }

// Label returns the default label of the wallet if it's set.
func (s Settings) Label() string {
	raw, ok := s["default_label"]
	if !ok {
		return ""
	}
	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return ""
	}
	return label
}
