package voting_test

import (
	"context"
	"testing"

	"dao/core"
	"dao/internal/govtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepare(t *testing.T) *govtest.Env {
	ctx := context.Background()
	env := govtest.New(t)

	require.NoError(t, env.Organizations.CreateOrganization(ctx, govtest.At("alice", 1), &core.Organization{
		Address: "guild",
		Members: []string{"alice", "bob", "carol"},
		Policy:  core.ThresholdPolicy{ApprovalThreshold: 2, ParticipationThreshold: 2},
	}))
	require.NoError(t, env.Organizations.CreateOrganization(ctx, govtest.At("dave", 1), &core.Organization{
		Address: "club",
		Members: []string{"dave"},
	}))

	p := govtest.Window(&core.Proposal{TraceID: "p1", OrgID: "guild"}, 10, 20)
	require.NoError(t, env.Proposer.CreateProposal(ctx, govtest.At("alice", 5), p))
	return env
}

func tallies(p *core.Proposal) [3]int64 {
	return [3]int64{p.YesVotes, p.NoVotes, p.AbstainVotes}
}

func TestVoteTiming(t *testing.T) {
	ctx := context.Background()
	env := prepare(t)
	before := len(env.EventKinds(t))

	for _, sec := range []int64{0, 9, 20, 21, 100} {
		err := env.Voting.Vote(ctx, govtest.At("alice", sec), "p1", core.VoteYes)
		assert.True(t, core.IsErrorCode(err, core.ErrTiming), "t=%d", sec)
	}

	assert.Equal(t, [3]int64{}, tallies(env.Proposal(t, "p1")))
	assert.Len(t, env.EventKinds(t), before)

	// both ends of the window
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 10), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 19), "p1", core.VoteNo))
	assert.Equal(t, [3]int64{1, 1, 0}, tallies(env.Proposal(t, "p1")))
}

func TestVoteCounts(t *testing.T) {
	ctx := context.Background()
	env := prepare(t)

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 12), "p1", core.VoteNo))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("carol", 12), "p1", core.VoteAbstain))

	p := env.Proposal(t, "p1")
	assert.Equal(t, [3]int64{1, 1, 1}, tallies(p))
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string(p.Voters))

	list, err := env.Events.List(ctx, nil, 0, 100)
	require.NoError(t, err)
	last := list[len(list)-1]
	assert.Equal(t, core.EventVoteSubmitted, last.Kind)
	assert.Equal(t, "p1", last.Subject)
	assert.Equal(t, "carol", last.Actor)
	assert.JSONEq(t, `{"voter":"carol","kind":"abstain"}`, last.Data.String())
}

func TestVoteTwice(t *testing.T) {
	ctx := context.Background()
	env := prepare(t)

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 13), "p1", core.VoteYes))

	p := env.Proposal(t, "p1")
	assert.Equal(t, int64(2), p.YesVotes)
	assert.Equal(t, []string{"alice"}, []string(p.Voters))

	env.System.Policy.DedupVotes = true
	err := env.Voting.Vote(ctx, govtest.At("alice", 14), "p1", core.VoteNo)
	assert.True(t, core.IsErrorCode(err, core.ErrDuplicateVote))
	assert.Equal(t, [3]int64{2, 0, 0}, tallies(env.Proposal(t, "p1")))

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 14), "p1", core.VoteNo))
}

func TestVoteRejected(t *testing.T) {
	ctx := context.Background()
	env := prepare(t)
	before := len(env.EventKinds(t))

	t.Run("non member", func(t *testing.T) {
		err := env.Voting.Vote(ctx, govtest.At("mallory", 12), "p1", core.VoteYes)
		assert.True(t, core.IsErrorCode(err, core.ErrAuthorization))
	})

	t.Run("member of another organization", func(t *testing.T) {
		err := env.Voting.Vote(ctx, govtest.At("dave", 12), "p1", core.VoteYes)
		assert.True(t, core.IsErrorCode(err, core.ErrAuthorization))
	})

	t.Run("missing proposal", func(t *testing.T) {
		err := env.Voting.Vote(ctx, govtest.At("alice", 12), "p9", core.VoteYes)
		assert.True(t, core.IsErrorCode(err, core.ErrProposalNotFound))
	})

	t.Run("invalid kind", func(t *testing.T) {
		err := env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteKind(0))
		assert.True(t, core.IsErrorCode(err, core.ErrInvalidArgument))
	})

	assert.Equal(t, [3]int64{}, tallies(env.Proposal(t, "p1")))
	assert.Len(t, env.EventKinds(t), before)

	t.Run("legacy authorization", func(t *testing.T) {
		env.System.Policy.LegacyAuthorization = true
		require.NoError(t, env.Voting.Vote(ctx, govtest.At("dave", 12), "p1", core.VoteYes))

		err := env.Voting.Vote(ctx, govtest.At("mallory", 12), "p1", core.VoteYes)
		assert.True(t, core.IsErrorCode(err, core.ErrAuthorization))
	})
}
