/*
Package agent is a package for the hook's event machinery. The agent package
is empty itself. All the functionality is inside sub-packages. Notifications
of the SSI agent come in through the server package or the trans package, the
bus decodes them to events and the watchers turn the events to protocol
milestones.

Summary of the packages:

	admin   the agent's admin API as an interface, mocks in admin/mock
	bus     bounded event bus, filters and subscriptions
	event   topic registry and payload decoding
	latch   one-shot value latch used by the milestones
	tenant  wallet id to name side table for logging
	trans   websocket client of the agent's notification channel
	utils   helpers for version, settings, uuid and home dir
	watch   protocol state watchers and milestones
*/
package agent
