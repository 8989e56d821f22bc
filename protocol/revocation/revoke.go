// Package revocation drives the revocation of an issued credential.
package revocation

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

// Target is the issued credential. The ids are in the issuer's exchange
// record after the credential is issued.
type Target struct {
	CredExID     string
	RevRegID     string
	CredRevID    string
	ConnectionID string
	ThreadID     string

	// Holder gets a revocation notification when set.
	Holder *protocol.Party
}

// TargetOf returns the target of the issuer's credential exchange record.
func TargetOf(rec record.CredentialExchange) Target {
	return Target{
		CredExID:     rec.CredentialExchangeID,
		RevRegID:     rec.RevocRegID,
		CredRevID:    rec.RevocationID,
		ConnectionID: rec.ConnectionID,
		ThreadID:     rec.ThreadID,
	}
}

type Result struct {
	Revocation record.CredentialRevocation
	Exchange   record.CredentialExchange
	Notified   bool
}

// Revoke revokes and publishes the credential and waits for both of the
// issuer's revocation milestones. If the target has a holder, the holder
// is notified and its notification is waited as well.
func Revoke(ctx context.Context, cfg protocol.Config, issuer protocol.Party, target Target) (r *Result, err error) {
	defer err2.Handle(&err, "revoke %s", target.CredExID)

	cfg.Validate()
	assert.NotEmpty(target.CredExID, "credential exchange id is missing")

	w := try.To1(watch.NewRevocation(cfg.Bus, issuer.Tenant,
		cfg.Bound(watch.Correlation{Exchange: target.CredExID})...))
	defer protocol.Cancel(w)

	var holderW *watch.Watcher
	notify := target.Holder != nil
	if notify {
		assert.That(target.RevRegID != "" && target.CredRevID != "",
			"revocation ids are needed for the notification")
		thread := record.RevocationThreadID(target.RevRegID, target.CredRevID)
		holderW = try.To1(watch.NewHolderRevocation(cfg.Bus, target.Holder.Tenant,
			cfg.Bound(watch.Correlation{Thread: thread})...))
		defer protocol.Cancel(holderW)
	}

	try.To(cfg.Client.Revoke(ctx, issuer.Tenant, admin.RevokeRequest{
		CredExID:     target.CredExID,
		ConnectionID: target.ConnectionID,
		ThreadID:     target.ThreadID,
		Publish:      true,
		Notify:       notify,
	}))

	r = &Result{}
	r.Revocation = try.To1(protocol.AwaitAs[record.CredentialRevocation](ctx, cfg, w, watch.Revoked))
	r.Exchange = try.To1(protocol.AwaitAs[record.CredentialExchange](ctx, cfg, w, watch.CredentialRevoked))
	if notify {
		try.To1(cfg.Await(ctx, holderW, watch.Notified))
		r.Notified = true
	}

	glog.V(1).Infoln("credential revoked:", target.CredExID)
	return r, nil
}
