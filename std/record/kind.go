/*
Package record includes the payload shapes the external agent pushes with its
webhook notifications. Every protocol has a closed set of roles and states
which are modelled as string enumerations, so the milestone predicates can be
plain comparisons of (role, state) pairs.
*/
package record

// Kind is the type tag of a payload shape. Every topic of the registry maps
// to exactly one Kind.
type Kind int

const (
	UnknownKind Kind = 0 + iota
	ConnectionKind
	CredentialExchangeKind
	CredentialExchangeV2Kind
	CredentialIndyKind
	PresentationExchangeKind
	PresentationExchangeV2Kind
	RevocationRegistryKind
	CredentialRevocationKind
	RevocationNotificationKind
	BasicMessageKind
	PingKind
	ProblemReportKind
	OutOfBandKind
	MediationKind
	EndorseTransactionKind
	SettingsKind
)

var kindNames = [...]string{
	"Unknown",
	"Connection",
	"CredentialExchange",
	"CredentialExchangeV2",
	"CredentialIndy",
	"PresentationExchange",
	"PresentationExchangeV2",
	"RevocationRegistry",
	"CredentialRevocation",
	"RevocationNotification",
	"BasicMessage",
	"Ping",
	"ProblemReport",
	"OutOfBand",
	"Mediation",
	"EndorseTransaction",
	"Settings",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[UnknownKind]
	}
	return kindNames[k]
}

// ParseKind returns the Kind for its name. It's mostly used by the CLI where
// kinds are given as flag values.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s && i != int(UnknownKind) {
			return Kind(i), true
		}
	}
	return UnknownKind, false
}

// Keys are the identifiers a record can be correlated with. Empty fields are
// unknown or not applicable for the record.
type Keys struct {
	Exchange   string
	Connection string
	Thread     string
}

// IsZero tells if none of the keys is set.
func (k Keys) IsZero() bool {
	return k.Exchange == "" && k.Connection == "" && k.Thread == ""
}

// Matches returns true if every non-empty field of the pattern k has the same
// value in other. A zero pattern matches everything.
func (k Keys) Matches(other Keys) bool {
	if k.Exchange != "" && k.Exchange != other.Exchange {
		return false
	}
	if k.Connection != "" && k.Connection != other.Connection {
		return false
	}
	if k.Thread != "" && k.Thread != other.Thread {
		return false
	}
	return true
}

// Correlated is implemented by the records that carry protocol identifiers.
type Correlated interface {
	Keys() Keys
}
