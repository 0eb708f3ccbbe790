package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestBinding(t *testing.T) {
	var query struct {
		Cursor int64 `json:"cursor"`
		Limit  int   `json:"limit"`
	}

	r := httptest.NewRequest("GET", "/api/events?cursor=12&limit=5&foo=bar", nil)
	require.NoError(t, Binding(r, &query))
	assert.Equal(t, int64(12), query.Cursor)
	assert.Equal(t, 5, query.Limit)

	var body struct {
		Kind string `json:"kind" valid:"in(yes|no|abstain),required"`
	}

	r = httptest.NewRequest("POST", "/api/proposals/p1/votes", strings.NewReader(`{"kind":"yes"}`))
	require.NoError(t, Binding(r, &body))
	assert.Equal(t, "yes", body.Kind)

	r = httptest.NewRequest("POST", "/api/proposals/p1/votes", strings.NewReader(`{"kind":"maybe"}`))
	err := Binding(r, &body)
	require.Error(t, err)
	assert.Equal(t, twirp.InvalidArgument, err.(twirp.Error).Code())

	r = httptest.NewRequest("POST", "/api/proposals/p1/votes", strings.NewReader(`{`))
	assert.Error(t, Binding(r, &body))
}
