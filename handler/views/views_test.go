package views

import (
	"testing"

	"dao/core"
	"dao/core/change"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalView(t *testing.T) {
	c, err := change.New("guild", change.MemberReq{Action: change.MemberAdd, Account: "dave"})
	require.NoError(t, err)

	p := core.Proposal{
		TraceID:      "p1",
		OrgID:        "guild",
		YesVotes:     1,
		AbstainVotes: 2,
		Changes: core.ProposedChanges{
			c,
			{Kind: core.ChangeKindOther, Target: "treasury", Payload: []byte("x")},
		},
	}

	view := ProposalView(p).WithPolicy(core.ThresholdPolicy{ApprovalThreshold: 3, ParticipationThreshold: 2})
	assert.Equal(t, "0.3333", view.Approval.String())
	assert.Equal(t, "1", view.Participation.String())

	require.Len(t, view.Changes, 2)
	assert.Equal(t, "update_member", view.Changes[0].Kind)
	assert.Equal(t, change.MemberReq{Action: change.MemberAdd, Account: "dave"}, view.Changes[0].Content)
	assert.Nil(t, view.Changes[1].Content)
	assert.Equal(t, "eA==", view.Changes[1].Payload)

	view = ProposalView(p).WithPolicy(core.ThresholdPolicy{})
	assert.Equal(t, "1", view.Approval.String())
}
