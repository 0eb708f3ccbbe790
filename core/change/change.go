// Package change holds the typed payloads carried by proposed changes.
package change

import (
	"encoding"
	"fmt"

	"dao/core"
)

// Payload decoded content of a proposed change
type Payload interface {
	Kind() core.ChangeKind
}

// Opaque payload of an Other change, left to external handlers
type Opaque struct {
	Target string `json:"target,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

// Kind implement Payload
func (Opaque) Kind() core.ChangeKind {
	return core.ChangeKindOther
}

// New build a change of the payload's kind
func New(target string, payload Payload) (core.ProposedChange, error) {
	c := core.ProposedChange{
		Kind:   payload.Kind(),
		Target: target,
	}

	switch p := payload.(type) {
	case Opaque:
		c.Payload = p.Data
	case encoding.BinaryMarshaler:
		data, err := p.MarshalBinary()
		if err != nil {
			return c, err
		}
		c.Payload = data
	default:
		return c, fmt.Errorf("payload %T is not encodable", payload)
	}

	return c, nil
}

// Decode the payload of c according to its kind
func Decode(c core.ProposedChange) (Payload, error) {
	switch c.Kind {
	case core.ChangeKindUpdateMember:
		var req MemberReq
		if err := req.UnmarshalBinary(c.Payload); err != nil {
			return nil, err
		}
		return req, nil

	case core.ChangeKindUpdateDAO:
		var req OrganizationReq
		if err := req.UnmarshalBinary(c.Payload); err != nil {
			return nil, err
		}
		return req, nil

	case core.ChangeKindOther:
		return Opaque{Target: c.Target, Data: c.Payload}, nil

	default:
		return nil, fmt.Errorf("unknown change kind %d", c.Kind)
	}
}
