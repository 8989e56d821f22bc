package record

// ConnectionState is the state of the connection protocol. The agent reports
// both RFC 0160 and RFC 0023 state names; Normalize folds them to RFC 0160.
type ConnectionState string

const (
	ConnectionStart      ConnectionState = "start"
	ConnectionInvitation ConnectionState = "invitation"
	ConnectionRequest    ConnectionState = "request"
	ConnectionResponse   ConnectionState = "response"
	ConnectionActive     ConnectionState = "active"
	ConnectionCompleted  ConnectionState = "completed"
	ConnectionError      ConnectionState = "error"
	ConnectionAbandoned  ConnectionState = "abandoned"

	// RFC 0023 names
	ConnectionInvitationSent     ConnectionState = "invitation-sent"
	ConnectionInvitationReceived ConnectionState = "invitation-received"
	ConnectionRequestSent        ConnectionState = "request-sent"
	ConnectionRequestReceived    ConnectionState = "request-received"
	ConnectionResponseSent       ConnectionState = "response-sent"
	ConnectionResponseReceived   ConnectionState = "response-received"
)

// Normalize returns the RFC 0160 name of the state.
func (s ConnectionState) Normalize() ConnectionState {
	switch s {
	case ConnectionInvitationSent, ConnectionInvitationReceived:
		return ConnectionInvitation
	case ConnectionRequestSent, ConnectionRequestReceived:
		return ConnectionRequest
	case ConnectionResponseSent, ConnectionResponseReceived:
		return ConnectionResponse
	case ConnectionCompleted:
		return ConnectionActive
	case ConnectionError:
		return ConnectionAbandoned
	}
	return s
}

// ConnectionRole is the role of the wallet in the connection protocol.
type ConnectionRole string

const (
	UnknownConnectionRole ConnectionRole = ""
	Inviter               ConnectionRole = "inviter"
	Invitee               ConnectionRole = "invitee"

	// RFC 0023 names of the same roles
	Responder ConnectionRole = "responder"
	Requester ConnectionRole = "requester"
)

// Connection is the connection record the agent pushes with the connections
// topic.
type Connection struct {
	ConnectionID       string          `json:"connection_id"`
	State              ConnectionState `json:"state,omitempty"`
	RFC23State         ConnectionState `json:"rfc23_state,omitempty"`
	TheirRole          ConnectionRole  `json:"their_role,omitempty"`
	TheirLabel         string          `json:"their_label,omitempty"`
	TheirDID           string          `json:"their_did,omitempty"`
	MyDID              string          `json:"my_did,omitempty"`
	Alias              string          `json:"alias,omitempty"`
	InvitationKey      string          `json:"invitation_key,omitempty"`
	InvitationMsgID    string          `json:"invitation_msg_id,omitempty"`
	InvitationMode     string          `json:"invitation_mode,omitempty"`
	Accept             string          `json:"accept,omitempty"`
	ConnectionProtocol string          `json:"connection_protocol,omitempty"`
	ErrorMsg           string          `json:"error_msg,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
	UpdatedAt          string          `json:"updated_at,omitempty"`
}

func (Connection) Kind() Kind { return ConnectionKind }

func (c Connection) Keys() Keys {
	return Keys{Exchange: c.ConnectionID, Connection: c.ConnectionID}
}

// Progress returns the normalized protocol state. The legacy state field wins
// when both are present.
func (c Connection) Progress() ConnectionState {
	if c.State != "" {
		return c.State.Normalize()
	}
	return c.RFC23State.Normalize()
}

// Role returns OUR role, which is the opposite of their_role.
func (c Connection) Role() ConnectionRole {
	switch c.TheirRole {
	case Inviter, Responder:
		return Invitee
	case Invitee, Requester:
		return Inviter
	}
	return UnknownConnectionRole
}
