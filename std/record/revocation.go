package record

type RegistryState string

const (
	RegistryInit           RegistryState = "init"
	RegistryGenerated      RegistryState = "generated"
	RegistryPosted         RegistryState = "posted"
	RegistryActive         RegistryState = "active"
	RegistryFull           RegistryState = "full"
	RegistryDecommissioned RegistryState = "decommissioned"
)

// RevocationRegistry is the issuer's revocation registry record.
type RevocationRegistry struct {
	RecordID       string        `json:"record_id"`
	State          RegistryState `json:"state"`
	CredDefID      string        `json:"cred_def_id,omitempty"`
	RevocRegID     string        `json:"revoc_reg_id,omitempty"`
	IssuerDID      string        `json:"issuer_did,omitempty"`
	MaxCredNum     int           `json:"max_cred_num,omitempty"`
	Tag            string        `json:"tag,omitempty"`
	TailsHash      string        `json:"tails_hash,omitempty"`
	TailsLocalPath string        `json:"tails_local_path,omitempty"`
	TailsPublicURI string        `json:"tails_public_uri,omitempty"`
	PendingPub     []string      `json:"pending_pub,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
	UpdatedAt      string        `json:"updated_at,omitempty"`
}

func (RevocationRegistry) Kind() Kind { return RevocationRegistryKind }

func (r RevocationRegistry) Keys() Keys {
	return Keys{Exchange: r.RevocRegID}
}

type CredentialRevocationState string

const (
	RevocationIssued  CredentialRevocationState = "issued"
	RevocationRevoked CredentialRevocationState = "revoked"
)

// CredentialRevocation is the issuer's per credential revocation record.
type CredentialRevocation struct {
	RecordID      string                    `json:"record_id"`
	State         CredentialRevocationState `json:"state"`
	CredExID      string                    `json:"cred_ex_id,omitempty"`
	RevRegID      string                    `json:"rev_reg_id,omitempty"`
	CredDefID     string                    `json:"cred_def_id,omitempty"`
	CredRevID     string                    `json:"cred_rev_id,omitempty"`
	CredExVersion string                    `json:"cred_ex_version,omitempty"`
	CreatedAt     string                    `json:"created_at,omitempty"`
	UpdatedAt     string                    `json:"updated_at,omitempty"`
}

func (CredentialRevocation) Kind() Kind { return CredentialRevocationKind }

func (c CredentialRevocation) Keys() Keys {
	return Keys{Exchange: c.CredExID}
}

// RevocationNotification is what the holder receives when the issuer has
// revoked the credential with the notify option.
type RevocationNotification struct {
	ThreadID string `json:"thread_id"`
	Comment  string `json:"comment,omitempty"`
}

func (RevocationNotification) Kind() Kind { return RevocationNotificationKind }

func (r RevocationNotification) Keys() Keys {
	return Keys{Thread: r.ThreadID}
}

// RevocationThreadID returns the thread id of the revocation notification
// of the credential.
func RevocationThreadID(revRegID, credRevID string) string {
	return "indy::" + revRegID + "::" + credRevID
}
