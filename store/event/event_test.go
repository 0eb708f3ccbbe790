package event

import (
	"context"
	"testing"
	"time"

	"dao/core"
	"dao/internal/dbtest"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStore(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	events := New(database)

	inv := core.NewInvocation("alice", time.Unix(12, 0))
	require.NoError(t, events.Create(ctx, nil,
		core.NewEvent(inv, core.EventProposalCreated, "p1", nil),
		core.NewEvent(inv, core.EventVoteSubmitted, "p1", core.VoteEventData{Voter: "alice", Kind: "yes"}),
	))

	// events written in a failed transaction are gone
	err := database.Tx(func(tx *db.DB) error {
		if err := events.Create(ctx, tx, core.NewEvent(inv, core.EventProposalExecuted, "p1", nil)); err != nil {
			return err
		}

		return core.ErrQuorum
	})
	assert.Error(t, err)

	list, err := events.List(ctx, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, core.EventProposalCreated, list[0].Kind)
	assert.Equal(t, "alice", list[0].Actor)
	assert.JSONEq(t, "{}", list[0].Data.String())
	assert.JSONEq(t, `{"voter":"alice","kind":"yes"}`, list[1].Data.String())

	list, err = events.List(ctx, nil, list[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, core.EventVoteSubmitted, list[0].Kind)
}
