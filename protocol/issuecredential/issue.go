// Package issuecredential drives the issue credential 1.0 protocol. The
// issuer offers, the holder requests, the issuer issues and the holder
// stores the credential.
package issuecredential

import (
	"context"

	"github.com/findy-network/findy-agent-hook/agent/admin"
	"github.com/findy-network/findy-agent-hook/agent/watch"
	"github.com/findy-network/findy-agent-hook/protocol"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

type Offer struct {
	ConnectionID string // issuer's connection to the holder
	CredDefID    string
	Attributes   []admin.Attribute
	Comment      string
}

type Result struct {
	Issuer record.CredentialExchange
	Holder record.CredentialExchange
}

func Issue(ctx context.Context, cfg protocol.Config, issuer, holder protocol.Party, offer Offer) (r *Result, err error) {
	defer err2.Handle(&err, "issue credential")

	cfg.Validate()
	assert.NotEmpty(offer.CredDefID, "credential definition id is missing")

	issuerW := try.To1(watch.NewIssuer(cfg.Bus, issuer.Tenant, cfg.Deferred()...))
	defer protocol.Cancel(issuerW)
	holderW := try.To1(watch.NewHolder(cfg.Bus, holder.Tenant, cfg.Deferred()...))
	defer protocol.Cancel(holderW)

	sent := try.To1(cfg.Client.SendOffer(ctx, issuer.Tenant, admin.OfferRequest{
		ConnectionID: offer.ConnectionID,
		CredDefID:    offer.CredDefID,
		Attributes:   offer.Attributes,
		Comment:      offer.Comment,
	}))
	issuerW.Bind(watch.Correlation{Exchange: sent.CredentialExchangeID})
	holderW.Bind(watch.Correlation{Thread: sent.ThreadID})
	glog.V(1).Infoln("credential offer sent, thread:", sent.ThreadID)

	received := try.To1(protocol.AwaitAs[record.CredentialExchange](ctx, cfg, holderW, watch.OfferReceived))
	try.To1(cfg.Client.SendRequest(ctx, holder.Tenant, received.CredentialExchangeID))

	try.To1(cfg.Await(ctx, issuerW, watch.RequestReceived))
	try.To1(cfg.Client.IssueCredential(ctx, issuer.Tenant, sent.CredentialExchangeID))

	try.To1(cfg.Await(ctx, holderW, watch.CredentialReceived))
	try.To1(cfg.Client.StoreCredential(ctx, holder.Tenant, received.CredentialExchangeID))

	r = &Result{}
	r.Holder = try.To1(protocol.AwaitAs[record.CredentialExchange](ctx, cfg, holderW, watch.CredentialAcked))
	r.Issuer = try.To1(protocol.AwaitAs[record.CredentialExchange](ctx, cfg, issuerW, watch.CredentialAcked))

	glog.V(1).Infoln("credential issued, holder's credential:", r.Holder.CredentialID)
	return r, nil
}
