/*
Package main is an application package for Findy agent hook. The hook sits
next to an SSI agent: it receives the agent's webhook and websocket
notifications, decodes them to typed records, and fans them out to
subscribers through a bounded event bus. Protocol state watchers built on the
bus let an application wait for milestones like an active connection or an
acknowledged credential without polling the agent.

You can use the hook and its Go packages roughly for three purposes:

1. As a service which receives an agent's notifications and reports its own
health over gRPC.

2. As a CLI tool for watching the events of an agent's wallets.

3. As a framework to drive connection, issuing, proving and revocation
protocols against an agent's admin API and await their outcomes.

# Sub-packages

	agent    includes framework packages: bus, event, watch, trans, tenant, ..
	cmds     implements the CLI commands, cmd binds them to cobra
	grpc     implements the gRPC health service
	protocol includes the protocol drivers built on agent/watch
	server   implements the http server for webhooks, version and metrics
	std      includes the agent's record types and DIDComm decorators
*/
package main
