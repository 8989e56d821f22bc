// Package connection drives the RFC 0160 connection protocol between two
// wallets of the agent.
package connection

import (
	"context"

	"github.com/findy-network/findy-agent-hook/agent/admin"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
	"github.com/findy-network/findy-agent-hook/agent/watch"
	"github.com/findy-network/findy-agent-hook/protocol"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

// Pair is the established connection seen from both sides.
type Pair struct {
	Inviter record.Connection
	Invitee record.Connection
}

// Connect creates an invitation for the inviter, gives it to the invitee
// and waits until both have the connection active.
func Connect(ctx context.Context, cfg protocol.Config, inviter, invitee protocol.Party) (p *Pair, err error) {
	defer err2.Handle(&err, "connect %s -> %s",
		tenant.Label(cfg.Names, inviter.Tenant), tenant.Label(cfg.Names, invitee.Tenant))

	cfg.Validate()
	assert.That(inviter.Tenant != invitee.Tenant, "inviter and invitee are the same wallet")

	inviterW := try.To1(watch.NewConnection(cfg.Bus, inviter.Tenant, record.Inviter,
		cfg.Deferred()...))
	defer protocol.Cancel(inviterW)
	inviteeW := try.To1(watch.NewConnection(cfg.Bus, invitee.Tenant, record.Invitee,
		cfg.Deferred()...))
	defer protocol.Cancel(inviteeW)

	inv := try.To1(cfg.Client.CreateInvitation(ctx, inviter.Tenant, admin.InvitationRequest{
		Alias: invitee.Label,
		Label: inviter.Label,
	}))
	assert.That(inv.Invitation != nil, "agent returned no invitation")
	inviterW.Bind(watch.Correlation{Connection: inv.ConnectionID})
	glog.V(1).Infoln("invitation", inv.Invitation.ID, "connection", inv.ConnectionID)

	conn := try.To1(cfg.Client.ReceiveInvitation(ctx, invitee.Tenant, *inv.Invitation, inviter.Label))
	inviteeW.Bind(watch.Correlation{Connection: conn.ConnectionID})

	p = &Pair{}
	p.Inviter = try.To1(protocol.AwaitAs[record.Connection](ctx, cfg, inviterW, watch.Active))
	p.Invitee = try.To1(protocol.AwaitAs[record.Connection](ctx, cfg, inviteeW, watch.Active))

	glog.V(1).Infof("connection active: %s(%s) <-> %s(%s)",
		tenant.Label(cfg.Names, inviter.Tenant), p.Inviter.ConnectionID,
		tenant.Label(cfg.Names, invitee.Tenant), p.Invitee.ConnectionID)
	return p, nil
}
