package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dao/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{core.ErrAuthorization, http.StatusForbidden, int(core.ErrAuthorization)},
		{core.ErrTiming, http.StatusPreconditionFailed, int(core.ErrTiming)},
		{fmt.Errorf("execute: %w", core.ErrQuorum), http.StatusPreconditionFailed, int(core.ErrQuorum)},
		{core.ErrProposalNotFound, http.StatusNotFound, int(core.ErrProposalNotFound)},
		{core.ErrDuplicateVote, http.StatusConflict, int(core.ErrDuplicateVote)},
		{core.ErrInvalidArgument, http.StatusBadRequest, InvalidArguments},
		{db.ErrOptimisticLock, http.StatusConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError, http.StatusInternalServerError},
	}

	for _, c := range cases {
		twerr := From(c.err)
		assert.Equal(t, c.status, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), c.err.Error())
		assert.Equal(t, c.code, Get(twerr), c.err.Error())
	}
}

func TestWith(t *testing.T) {
	err := With(twirp.InvalidArgumentError("kind", "unknown"), 42)
	assert.Equal(t, 42, Get(err.(twirp.Error)))
}
