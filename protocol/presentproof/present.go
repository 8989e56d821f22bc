// Package presentproof drives the present proof 1.0 protocol started by the
// verifier.
package presentproof

import (
	"context"

	"github.com/findy-network/findy-agent-hook/agent/admin"
	"github.com/findy-network/findy-agent-hook/agent/watch"
	"github.com/findy-network/findy-agent-hook/protocol"
	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type Request struct {
	ConnectionID string // verifier's connection to the prover
	Name         string
	Attributes   []admin.RequestedAttribute
	Comment      string
}

type Result struct {
	// Verified comes from the verifier's record. The prover's record
	// never tells it.
	Verified bool
	Verifier record.PresentationExchange
	Prover   record.PresentationExchange
}

func Present(ctx context.Context, cfg protocol.Config, verifier, prover protocol.Party, req Request) (r *Result, err error) {
	defer err2.Handle(&err, "present proof")

	cfg.Validate()

	verifierW := try.To1(watch.NewVerifier(cfg.Bus, verifier.Tenant, cfg.Deferred()...))
	defer protocol.Cancel(verifierW)
	proverW := try.To1(watch.NewProver(cfg.Bus, prover.Tenant, cfg.Deferred()...))
	defer protocol.Cancel(proverW)

	name := req.Name
	if name == "" {
		name = "proof"
	}
	sent := try.To1(cfg.Client.SendPresentationRequest(ctx, verifier.Tenant, admin.PresentationRequest{
		ConnectionID: req.ConnectionID,
		Name:         name,
		Version:      "1.0",
		Attributes:   req.Attributes,
		Comment:      req.Comment,
	}))
	verifierW.Bind(watch.Correlation{Exchange: sent.PresentationExchangeID})
	proverW.Bind(watch.Correlation{Thread: sent.ThreadID})
	glog.V(1).Infoln("proof request sent, thread:", sent.ThreadID)

	received := try.To1(protocol.AwaitAs[record.PresentationExchange](ctx, cfg, proverW, watch.RequestReceived))
	try.To1(cfg.Client.SendPresentation(ctx, prover.Tenant, received.PresentationExchangeID))

	try.To1(cfg.Await(ctx, verifierW, watch.PresentationReceived))
	try.To1(cfg.Client.VerifyPresentation(ctx, verifier.Tenant, sent.PresentationExchangeID))

	r = &Result{}
	r.Verifier = try.To1(protocol.AwaitAs[record.PresentationExchange](ctx, cfg, verifierW, watch.Verified))
	r.Verified, _ = r.Verifier.Outcome()
	r.Prover = try.To1(protocol.AwaitAs[record.PresentationExchange](ctx, cfg, proverW, watch.PresentationAcked))

	glog.V(1).Infoln("proof presented, verified:", r.Verified)
	return r, nil
}
