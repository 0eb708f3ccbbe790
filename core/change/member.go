package change

import (
	"errors"

	"dao/core"
	"dao/pkg/mtg"
)

// MemberAction roster operation
type MemberAction int

const (
	_ MemberAction = iota
	// MemberAdd append the account
	MemberAdd
	// MemberRemove remove one entry of the account
	MemberRemove
)

func (a MemberAction) String() string {
	switch a {
	case MemberAdd:
		return "add"
	case MemberRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// IsValid is a known action
func (a MemberAction) IsValid() bool {
	return a == MemberAdd || a == MemberRemove
}

// MemberReq payload of an UpdateMember change
type MemberReq struct {
	Action  MemberAction `json:"action,omitempty"`
	Account string       `json:"account,omitempty"`
}

// Kind implement Payload
func (MemberReq) Kind() core.ChangeKind {
	return core.ChangeKindUpdateMember
}

// MarshalBinary marshal req to binary
func (r MemberReq) MarshalBinary() ([]byte, error) {
	if !r.Action.IsValid() {
		return nil, errors.New("invalid member action")
	}

	return mtg.Encode(int(r.Action), r.Account)
}

// UnmarshalBinary unmarshal bytes to req
func (r *MemberReq) UnmarshalBinary(data []byte) error {
	var action int
	var account string

	if _, err := mtg.Scan(data, &action, &account); err != nil {
		return err
	}

	a := MemberAction(action)
	if !a.IsValid() {
		return errors.New("invalid member action")
	}

	r.Action = a
	r.Account = account
	return nil
}
