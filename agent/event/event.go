package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/findy-network/findy-agent-hook/std/record"
	"github.com/tidwall/gjson"
)

var (
	ErrUnknownTopic = errors.New("unknown topic")
	ErrMalformed    = errors.New("malformed payload")
)

// Payload is implemented by the record types of the std/record package.
type Payload interface {
	Kind() record.Kind
}

// Notification is one raw message from the agent. An empty Tenant means the
// base wallet of the agent.
type Notification struct {
	Tenant  string
	Topic   string
	Payload []byte
}

// Event is a decoded Notification.
type Event struct {
	Tenant  string
	Topic   string
	Payload Payload
}

func (e Event) Kind() record.Kind {
	if e.Payload == nil {
		return record.UnknownKind
	}
	return e.Payload.Kind()
}

func (e Event) String() string {
	return fmt.Sprintf("%s/%s(%s)", e.Tenant, e.Topic, e.Kind())
}

// Keys returns the correlation keys of the payload if it has them.
func (e Event) Keys() record.Keys {
	if c, ok := e.Payload.(record.Correlated); ok {
		return c.Keys()
	}
	return record.Keys{}
}

// Decode decodes the notification to the registered payload shape of its
// topic. The returned error wraps ErrUnknownTopic or ErrMalformed.
func Decode(n Notification) (ev Event, err error) {
	e, ok := registry[n.Topic]
	if !ok {
		return ev, fmt.Errorf("%w: %q", ErrUnknownTopic, n.Topic)
	}
	if !gjson.ValidBytes(n.Payload) || !gjson.ParseBytes(n.Payload).IsObject() {
		return ev, fmt.Errorf("%w: topic %q: not a JSON object", ErrMalformed, n.Topic)
	}
	payload, err := e.decode(n.Payload)
	if err != nil {
		return ev, fmt.Errorf("%w: topic %q: %v", ErrMalformed, n.Topic, err)
	}
	return Event{Tenant: n.Tenant, Topic: n.Topic, Payload: payload}, nil
}

// IsKeepalive tells if the notification is an agent keepalive: a reserved
// topic without any payload. Those carry nothing to correlate with and are
// dropped before decoding.
func IsKeepalive(n Notification) bool {
	if _, ok := keepaliveTopics[n.Topic]; !ok {
		return false
	}
	p := gjson.ParseBytes(n.Payload)
	switch {
	case !p.Exists(), p.Type == gjson.Null:
		return true
	case p.IsObject():
		empty := true
		p.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	}
	return false
}

func decoder[T Payload]() func([]byte) (Payload, error) {
	return func(data []byte) (Payload, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
