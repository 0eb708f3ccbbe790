package execution_test

import (
	"context"
	"errors"
	"testing"

	"dao/core"
	"dao/core/change"
	"dao/internal/govtest"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepare(t *testing.T, changes ...core.ProposedChange) *govtest.Env {
	ctx := context.Background()
	env := govtest.New(t)

	require.NoError(t, env.Organizations.CreateOrganization(ctx, govtest.At("alice", 1), &core.Organization{
		Address: "guild",
		Members: []string{"alice", "bob", "carol"},
		Policy:  core.ThresholdPolicy{ProposalThreshold: 0, ApprovalThreshold: 2, ParticipationThreshold: 2},
	}))

	p := govtest.Window(&core.Proposal{TraceID: "p1", OrgID: "guild", Changes: changes}, 10, 20)
	require.NoError(t, env.Proposer.CreateProposal(ctx, govtest.At("alice", 5), p))
	return env
}

func mustChange(t *testing.T, target string, payload change.Payload) core.ProposedChange {
	c, err := change.New(target, payload)
	require.NoError(t, err)
	return c
}

func TestExecuteScenario(t *testing.T) {
	ctx := context.Background()
	env := prepare(t,
		mustChange(t, "guild", change.MemberReq{Action: change.MemberAdd, Account: "dave"}),
		mustChange(t, "guild", change.OrganizationReq{Name: "Guild v2"}),
	)

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("carol", 12), "p1", core.VoteAbstain))

	p := env.Proposal(t, "p1")
	assert.Equal(t, int64(2), p.YesVotes)
	assert.Equal(t, int64(0), p.NoVotes)
	assert.Equal(t, int64(1), p.AbstainVotes)

	// window still open at its last second
	err := env.Execution.Execute(ctx, govtest.At("alice", 19), "p1")
	assert.True(t, core.IsErrorCode(err, core.ErrTiming))

	require.NoError(t, env.Execution.Execute(ctx, govtest.At("alice", 21), "p1"))

	p = env.Proposal(t, "p1")
	assert.True(t, p.Executed)
	assert.True(t, p.ExecutedAt.Valid)

	org := env.Organization(t, "guild")
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, []string(org.Members))
	assert.Equal(t, "Guild v2", org.Name)

	assert.Equal(t, []core.EventKind{
		core.EventOrganizationCreated,
		core.EventProposalCreated,
		core.EventVoteSubmitted,
		core.EventVoteSubmitted,
		core.EventVoteSubmitted,
		core.EventMemberAdded,
		core.EventOrganizationUpdated,
		core.EventProposalExecuted,
	}, env.EventKinds(t))
}

func TestExecuteSeveralChangesToOneOrganization(t *testing.T) {
	ctx := context.Background()
	env := prepare(t,
		mustChange(t, "guild", change.MemberReq{Action: change.MemberAdd, Account: "dave"}),
		mustChange(t, "guild", change.MemberReq{Action: change.MemberAdd, Account: "erin"}),
		mustChange(t, "guild", change.MemberReq{Action: change.MemberRemove, Account: "alice"}),
	)

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 12), "p1", core.VoteYes))
	version := env.Organization(t, "guild").Version

	require.NoError(t, env.Execution.Execute(ctx, govtest.At("bob", 21), "p1"))

	org := env.Organization(t, "guild")
	assert.Equal(t, []string{"erin", "bob", "carol", "dave"}, []string(org.Members))
	assert.Equal(t, version+3, org.Version)
	assert.True(t, env.Proposal(t, "p1").Executed)
}

func TestExecuteWithoutQuorum(t *testing.T) {
	ctx := context.Background()
	env := prepare(t, mustChange(t, "guild", change.MemberReq{Action: change.MemberAdd, Account: "dave"}))

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	before := len(env.EventKinds(t))

	err := env.Execution.Execute(ctx, govtest.At("alice", 21), "p1")
	assert.True(t, core.IsErrorCode(err, core.ErrQuorum))
	assert.False(t, env.Proposal(t, "p1").Executed)
	assert.Len(t, env.Organization(t, "guild").Members, 3)
	assert.Len(t, env.EventKinds(t), before)
}

func TestQuorumPredicate(t *testing.T) {
	ctx := context.Background()
	env := govtest.New(t)

	require.NoError(t, env.Organizations.CreateOrganization(ctx, govtest.At("alice", 1), &core.Organization{
		Address: "guild",
		Members: []string{"alice"},
		Policy:  core.ThresholdPolicy{ApprovalThreshold: 2, ParticipationThreshold: 3},
	}))

	cases := []struct {
		id               string
		yes, no, abstain int64
		expect           bool
	}{
		{"enough", 2, 0, 1, true},
		{"yes only", 3, 0, 0, true},
		{"no votes do not participate", 2, 5, 0, false},
		{"abstain does not approve", 1, 0, 5, false},
		{"nothing", 0, 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			p := govtest.Window(&core.Proposal{
				TraceID:      c.id,
				OrgID:        "guild",
				YesVotes:     c.yes,
				NoVotes:      c.no,
				AbstainVotes: c.abstain,
			}, 10, 20)
			require.NoError(t, env.Proposer.CreateProposal(ctx, govtest.At("alice", 5), p))

			err := env.Execution.Execute(ctx, govtest.At("alice", 20), c.id)
			if c.expect {
				assert.NoError(t, err)
			} else {
				assert.True(t, core.IsErrorCode(err, core.ErrQuorum))
			}
			assert.Equal(t, c.expect, env.Proposal(t, c.id).Executed)
		})
	}
}

func TestExecuteRollback(t *testing.T) {
	ctx := context.Background()
	env := prepare(t,
		mustChange(t, "guild", change.MemberReq{Action: change.MemberRemove, Account: "carol"}),
		mustChange(t, "treasury", change.Opaque{Data: []byte("pay")}),
	)

	errTreasury := errors.New("treasury offline")
	var calls int
	env.Applier.Register("treasury", core.ChangeHandlerFunc(func(ctx context.Context, tx *db.DB, inv *core.Invocation, p *core.Proposal, c core.ProposedChange) error {
		calls++
		assert.Equal(t, []byte("pay"), c.Payload)
		return errTreasury
	}))

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 12), "p1", core.VoteYes))
	before := len(env.EventKinds(t))

	err := env.Execution.Execute(ctx, govtest.At("alice", 21), "p1")
	assert.True(t, errors.Is(err, errTreasury))
	assert.Equal(t, 1, calls)

	assert.False(t, env.Proposal(t, "p1").Executed)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string(env.Organization(t, "guild").Members))
	assert.Len(t, env.EventKinds(t), before)

	// retry once the handler recovers
	env.Applier.Register("treasury", core.ChangeHandlerFunc(func(context.Context, *db.DB, *core.Invocation, *core.Proposal, core.ProposedChange) error {
		return nil
	}))
	require.NoError(t, env.Execution.Execute(ctx, govtest.At("alice", 22), "p1"))
	assert.Equal(t, []string{"alice", "bob"}, []string(env.Organization(t, "guild").Members))
}

func TestReExecute(t *testing.T) {
	ctx := context.Background()
	env := prepare(t, mustChange(t, "guild", change.MemberReq{Action: change.MemberAdd, Account: "dave"}))

	require.NoError(t, env.Voting.Vote(ctx, govtest.At("alice", 12), "p1", core.VoteYes))
	require.NoError(t, env.Voting.Vote(ctx, govtest.At("bob", 12), "p1", core.VoteYes))

	require.NoError(t, env.Execution.Execute(ctx, govtest.At("alice", 21), "p1"))
	require.NoError(t, env.Execution.Execute(ctx, govtest.At("alice", 22), "p1"))
	assert.Equal(t, []string{"alice", "bob", "carol", "dave", "dave"}, []string(env.Organization(t, "guild").Members))

	env.System.Policy.GuardExecuted = true
	err := env.Execution.Execute(ctx, govtest.At("alice", 23), "p1")
	assert.True(t, core.IsErrorCode(err, core.ErrAlreadyExecuted))
	assert.Len(t, env.Organization(t, "guild").Members, 5)
}

func TestExecuteRejected(t *testing.T) {
	ctx := context.Background()
	env := prepare(t)

	err := env.Execution.Execute(ctx, govtest.At("alice", 21), "p9")
	assert.True(t, core.IsErrorCode(err, core.ErrProposalNotFound))

	err = env.Execution.Execute(ctx, govtest.At("mallory", 21), "p1")
	assert.True(t, core.IsErrorCode(err, core.ErrAuthorization))
}

func TestExecuteByProposer(t *testing.T) {
	ctx := context.Background()
	env := govtest.New(t)

	require.NoError(t, env.Organizations.CreateOrganization(ctx, govtest.At("alice", 1), &core.Organization{
		Address: "guild",
		Members: []string{"alice"},
	}))

	// stored without an organization reference
	p := govtest.Window(&core.Proposal{TraceID: "old", Proposer: "guild"}, 10, 20)
	require.NoError(t, env.Proposals.Create(ctx, nil, p))

	require.NoError(t, env.Execution.Execute(ctx, govtest.At("alice", 21), "old"))
	assert.True(t, env.Proposal(t, "old").Executed)
}
