//go:generate mockgen -package mock -source admin.go -destination mock/mock_client.go Client

/*
Package admin is the contract of the outbound requests to the external
agent's admin API. The implementation of the HTTP client lives outside of
this module. The responses are the agent's records, which carry the ids the
protocol drivers use to correlate the notifications.

Every method takes the wallet id of the tenant the request is made for; an
empty id means the base wallet.
*/
package admin

import (
	"context"

	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/hyperledger/aries-framework-go/pkg/didcomm/protocol/legacyconnection"
)

// Invitation is the RFC 0160 connection invitation.
type Invitation = legacyconnection.Invitation

type InvitationRequest struct {
	Alias    string
	Label    string
	MultiUse bool
}

type InvitationResult struct {
	ConnectionID  string
	InvitationURL string
	Invitation    *Invitation
}

type Attribute struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	MimeType string `json:"mime-type,omitempty"`
}

type OfferRequest struct {
	ConnectionID string
	CredDefID    string
	Attributes   []Attribute
	Comment      string
	AutoRemove   bool
}

type RequestedAttribute struct {
	Name      string `json:"name"`
	CredDefID string `json:"cred_def_id,omitempty"`
}

type PresentationRequest struct {
	ConnectionID string
	Name         string
	Version      string
	Attributes   []RequestedAttribute
	Comment      string
}

type RevokeRequest struct {
	CredExID     string
	ConnectionID string
	ThreadID     string
	Publish      bool
	Notify       bool
}

type Client interface {
	CreateInvitation(ctx context.Context, tenant string, req InvitationRequest) (InvitationResult, error)
	ReceiveInvitation(ctx context.Context, tenant string, inv Invitation, alias string) (record.Connection, error)

	SendOffer(ctx context.Context, tenant string, req OfferRequest) (record.CredentialExchange, error)
	SendRequest(ctx context.Context, tenant, credExID string) (record.CredentialExchange, error)
	IssueCredential(ctx context.Context, tenant, credExID string) (record.CredentialExchange, error)
	StoreCredential(ctx context.Context, tenant, credExID string) (record.CredentialExchange, error)

	SendPresentationRequest(ctx context.Context, tenant string, req PresentationRequest) (record.PresentationExchange, error)
	SendPresentation(ctx context.Context, tenant, presExID string) (record.PresentationExchange, error)
	VerifyPresentation(ctx context.Context, tenant, presExID string) (record.PresentationExchange, error)

	Revoke(ctx context.Context, tenant string, req RevokeRequest) error
}
