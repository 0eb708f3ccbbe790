package views

import (
	"encoding/base64"
	"time"

	"dao/core"
	"dao/core/change"

	"github.com/shopspring/decimal"
)

type (
	Change struct {
		Kind    string      `json:"kind"`
		Target  string      `json:"target"`
		Payload string      `json:"payload,omitempty"`
		Content interface{} `json:"content,omitempty"`
	}

	Proposal struct {
		ID           string     `json:"id"`
		OrgID        string     `json:"org_id"`
		Title        string     `json:"title,omitempty"`
		Description  string     `json:"description,omitempty"`
		Proposer     string     `json:"proposer"`
		StartAt      time.Time  `json:"start_at"`
		EndAt        time.Time  `json:"end_at"`
		YesVotes     int64      `json:"yes_votes"`
		NoVotes      int64      `json:"no_votes"`
		AbstainVotes int64      `json:"abstain_votes"`
		Voters       []string   `json:"voters,omitempty"`
		Executed     bool       `json:"executed"`
		ExecutedAt   *time.Time `json:"executed_at,omitempty"`
		Changes      []Change   `json:"changes"`
		CreatedAt    time.Time  `json:"created_at"`
		UpdatedAt    time.Time  `json:"updated_at"`

		// progress towards the thresholds of the organization, 1 means reached
		Approval      *decimal.Decimal `json:"approval,omitempty"`
		Participation *decimal.Decimal `json:"participation,omitempty"`
	}
)

func ChangeView(c core.ProposedChange) Change {
	view := Change{
		Kind:    c.Kind.String(),
		Target:  c.Target,
		Payload: base64.StdEncoding.EncodeToString(c.Payload),
	}

	if payload, err := change.Decode(c); err == nil {
		if _, opaque := payload.(change.Opaque); !opaque {
			view.Content = payload
		}
	}

	return view
}

func ProposalView(p core.Proposal) Proposal {
	view := Proposal{
		ID:           p.TraceID,
		OrgID:        p.OrgID,
		Title:        p.Title,
		Description:  p.Description,
		Proposer:     p.Proposer,
		StartAt:      p.StartAt,
		EndAt:        p.EndAt,
		YesVotes:     p.YesVotes,
		NoVotes:      p.NoVotes,
		AbstainVotes: p.AbstainVotes,
		Voters:       p.Voters,
		Executed:     p.Executed,
		Changes:      make([]Change, len(p.Changes)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.ExecutedAt.Valid {
		view.ExecutedAt = &p.ExecutedAt.Time
	}

	for i, c := range p.Changes {
		view.Changes[i] = ChangeView(c)
	}

	return view
}

// WithPolicy fill the progress ratios against policy
func (p Proposal) WithPolicy(policy core.ThresholdPolicy) Proposal {
	p.Approval = ratio(p.YesVotes, policy.ApprovalThreshold)
	p.Participation = ratio(p.YesVotes+p.AbstainVotes, policy.ParticipationThreshold)
	return p
}

func ratio(votes, threshold int64) *decimal.Decimal {
	r := decimal.NewFromInt(1)
	if threshold > 0 {
		r = decimal.Min(r, decimal.NewFromInt(votes).Div(decimal.NewFromInt(threshold)).Truncate(4))
	}

	return &r
}

func ProposalViews(ps []*core.Proposal) []Proposal {
	var items = make([]Proposal, len(ps))
	for i, item := range ps {
		items[i] = ProposalView(*item)
	}
	return items
}
