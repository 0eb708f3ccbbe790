package codes

import (
	"errors"
	"strconv"

	"dao/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = int(core.ErrInvalidArgument)
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From convert a service error to a twirp error carrying its custom code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	if errors.Is(err, db.ErrOptimisticLock) {
		return twirp.NewError(twirp.Aborted, "concurrent update, retry")
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrAuthorization:
		twerr = twirp.NewError(twirp.PermissionDenied, code.Error())
	case core.ErrTiming, core.ErrQuorum:
		twerr = twirp.NewError(twirp.FailedPrecondition, code.Error())
	case core.ErrInvalidArgument:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Error())
	case core.ErrOrganizationNotFound, core.ErrProposalNotFound:
		twerr = twirp.NotFoundError(code.Error())
	case core.ErrDuplicateVote, core.ErrAlreadyExecuted:
		twerr = twirp.NewError(twirp.AlreadyExists, code.Error())
	default:
		twerr = twirp.InternalError(code.Error())
	}

	return twerr.WithMeta(CustomCodeKey, code.String())
}

// Get get error code
func Get(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}
