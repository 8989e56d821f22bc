package watch

import (
	"fmt"
	"time"

	"github.com/findy-network/findy-agent-hook/agent/event"
	"github.com/findy-network/findy-agent-hook/agent/tenant"
)

// MilestoneError tells that a required milestone wasn't reached in time.
type MilestoneError struct {
	Tenant    string
	Role      string
	Milestone Milestone
	Timeout   time.Duration
}

func (e *MilestoneError) Error() string {
	return fmt.Sprintf("wallet %s as %s: %s not observed within %v",
		tenant.Label(nil, e.Tenant), e.Role, e.Milestone, e.Timeout)
}

// Require waits for the milestone and converts the timeout to
// MilestoneError.
func Require(w *Watcher, name Milestone, timeout time.Duration) (event.Payload, error) {
	p, ok := w.Await(name, timeout)
	if !ok {
		return nil, &MilestoneError{
			Tenant:    w.Tenant(),
			Role:      w.Role(),
			Milestone: name,
			Timeout:   timeout,
		}
	}
	return p, nil
}

// RequireAs is Require with a typed payload.
func RequireAs[T event.Payload](w *Watcher, name Milestone, timeout time.Duration) (v T, err error) {
	p, err := Require(w, name, timeout)
	if err != nil {
		return v, err
	}
	v, ok := p.(T)
	if !ok {
		return v, fmt.Errorf("%s: unexpected payload %T", name, p)
	}
	return v, nil
}
