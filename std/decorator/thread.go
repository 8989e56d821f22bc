// Package decorator has helpers for the DIDComm ~thread decorator which the
// agent echoes in problem reports.
package decorator

import "github.com/hyperledger/aries-framework-go/pkg/didcomm/protocol/decorator"

// Thread is the ~thread decorator, thid and pthid.
type Thread = decorator.Thread

// ThreadID returns the thread id which is the parent thread id for the
// threads which don't have their own.
func ThreadID(thread *Thread) string {
	if thread == nil {
		return ""
	}
	if thread.ID == "" {
		return thread.PID
	}
	return thread.ID
}
