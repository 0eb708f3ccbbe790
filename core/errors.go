package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrAuthorization caller is not a member
	ErrAuthorization ErrorCode = 100001
	// ErrTiming operation outside its time window
	ErrTiming ErrorCode = 100002
	// ErrQuorum approval or participation threshold not reached
	ErrQuorum ErrorCode = 100003
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100004

	// ErrOrganizationNotFound no organization
	ErrOrganizationNotFound ErrorCode = 100100
	// ErrProposalNotFound no proposal
	ErrProposalNotFound ErrorCode = 100101
	// ErrDuplicateVote voter already voted
	ErrDuplicateVote ErrorCode = 100102
	// ErrAlreadyExecuted proposal already executed
	ErrAlreadyExecuted ErrorCode = 100103
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:              "unknown error",
	ErrAuthorization:        "caller is not a member",
	ErrTiming:               "outside of the allowed time window",
	ErrQuorum:               "quorum not reached",
	ErrInvalidArgument:      "invalid argument",
	ErrOrganizationNotFound: "organization not found",
	ErrProposalNotFound:     "proposal not found",
	ErrDuplicateVote:        "already voted",
	ErrAlreadyExecuted:      "proposal already executed",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// IsErrorCode report whether err carries the given code
func IsErrorCode(err error, code ErrorCode) bool {
	var e ErrorCode
	return errors.As(err, &e) && e == code
}
