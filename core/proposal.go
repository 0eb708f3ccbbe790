package core

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/spf13/cast"
)

// VoteKind ballot choice
type VoteKind int

const (
	_ VoteKind = iota
	// VoteYes approve
	VoteYes
	// VoteNo reject
	VoteNo
	// VoteAbstain counted for participation only
	VoteAbstain
)

func (k VoteKind) String() string {
	switch k {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// IsValid is a known vote kind
func (k VoteKind) IsValid() bool {
	return k >= VoteYes && k <= VoteAbstain
}

// ParseVoteKind parse yes/no/abstain
func ParseVoteKind(s string) VoteKind {
	for _, k := range []VoteKind{VoteYes, VoteNo, VoteAbstain} {
		if k.String() == s {
			return k
		}
	}

	return 0
}

// ChangeKind kind of a proposed change
type ChangeKind int

const (
	_ ChangeKind = iota
	// ChangeKindUpdateMember roster mutation
	ChangeKindUpdateMember
	// ChangeKindUpdateDAO organization update
	ChangeKindUpdateDAO
	// ChangeKindOther opaque payload for external handlers
	ChangeKindOther
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeKindUpdateMember:
		return "update_member"
	case ChangeKindUpdateDAO:
		return "update_dao"
	case ChangeKindOther:
		return "other"
	default:
		return "unknown"
	}
}

// IsValid is a known change kind
func (k ChangeKind) IsValid() bool {
	return k >= ChangeKindUpdateMember && k <= ChangeKindOther
}

type (
	// ProposedChange a change applied when the proposal executes
	ProposedChange struct {
		Kind    ChangeKind `json:"kind"`
		Target  string     `json:"target"`
		Payload []byte     `json:"payload,omitempty"`
	}

	// ProposedChanges ordered changes, stored as json
	ProposedChanges []ProposedChange

	// Proposal proposal info
	Proposal struct {
		ID           int64           `sql:"PRIMARY_KEY" json:"id,omitempty"`
		CreatedAt    time.Time       `json:"created_at,omitempty"`
		UpdatedAt    time.Time       `json:"updated_at,omitempty"`
		Version      int64           `json:"version,omitempty"`
		TraceID      string          `sql:"size:36" json:"trace_id,omitempty"`
		OrgID        string          `sql:"size:64" json:"org_id,omitempty"`
		Title        string          `sql:"size:255" json:"title,omitempty"`
		Description  string          `sql:"size:2048" json:"description,omitempty"`
		Changes      ProposedChanges `sql:"type:text" json:"changes,omitempty"`
		Proposer     string          `sql:"size:64" json:"proposer,omitempty"`
		StartAt      time.Time       `json:"start_at"`
		EndAt        time.Time       `json:"end_at"`
		YesVotes     int64           `json:"yes_votes"`
		NoVotes      int64           `json:"no_votes"`
		AbstainVotes int64           `json:"abstain_votes"`
		Voters       pq.StringArray  `sql:"type:text" json:"voters,omitempty"`
		Executed     bool            `json:"executed"`
		ExecutedAt   sql.NullTime    `json:"executed_at,omitempty"`
	}

	// Vote ephemeral ballot, only its effect on the tallies is stored
	Vote struct {
		ProposalID string   `json:"proposal_id,omitempty"`
		Voter      string   `json:"voter,omitempty"`
		Kind       VoteKind `json:"kind,omitempty"`
	}

	// ProposalStore proposal store interface. A nil tx reads through the
	// store's own connection.
	ProposalStore interface {
		// Create insert or overwrite the proposal at p.TraceID
		Create(ctx context.Context, tx *db.DB, p *Proposal) error
		// Find return an empty proposal (ID 0) if not found
		Find(ctx context.Context, tx *db.DB, trace string) (*Proposal, error)
		Update(ctx context.Context, tx *db.DB, p *Proposal) error
		List(ctx context.Context, tx *db.DB, fromID int64, limit int) ([]*Proposal, error)
	}

	// ProposalService proposal creation
	ProposalService interface {
		CreateProposal(ctx context.Context, inv *Invocation, p *Proposal) error
	}

	// VotingService voting engine
	VotingService interface {
		Vote(ctx context.Context, inv *Invocation, proposalID string, kind VoteKind) error
	}

	// ExecutionService execution engine
	ExecutionService interface {
		Execute(ctx context.Context, inv *Invocation, proposalID string) error
	}

	// ChangeHandler apply one change inside the executing transaction
	ChangeHandler interface {
		Handle(ctx context.Context, tx *db.DB, inv *Invocation, p *Proposal, change ProposedChange) error
	}

	// ChangeHandlerFunc adapter of ChangeHandler
	ChangeHandlerFunc func(ctx context.Context, tx *db.DB, inv *Invocation, p *Proposal, change ProposedChange) error

	// ChangeApplier dispatch a change by its kind
	ChangeApplier interface {
		Apply(ctx context.Context, tx *db.DB, inv *Invocation, p *Proposal, change ProposedChange) error
	}
)

// Handle implement ChangeHandler
func (f ChangeHandlerFunc) Handle(ctx context.Context, tx *db.DB, inv *Invocation, p *Proposal, change ProposedChange) error {
	return f(ctx, tx, inv, p, change)
}

// Value implement driver.Valuer
func (c ProposedChanges) Value() (driver.Value, error) {
	if c == nil {
		c = ProposedChanges{}
	}

	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// Scan implement sql.Scanner
func (c *ProposedChanges) Scan(src interface{}) error {
	v := cast.ToString(src)
	if v == "" {
		*c = nil
		return nil
	}

	var changes ProposedChanges
	if err := json.Unmarshal([]byte(v), &changes); err != nil {
		return err
	}

	*c = changes
	return nil
}

// InVotingWindow start <= t < end
func (p *Proposal) InVotingWindow(t time.Time) bool {
	return !t.Before(p.StartAt) && t.Before(p.EndAt)
}

// VotingClosed t >= end
func (p *Proposal) VotingClosed(t time.Time) bool {
	return !t.Before(p.EndAt)
}

// HasVoted check if voter has voted before
func (p *Proposal) HasVoted(voter string) bool {
	return govalidator.IsIn(voter, p.Voters...)
}

// Count add one vote of the given kind to the tallies
func (p *Proposal) Count(voter string, kind VoteKind) {
	switch kind {
	case VoteYes:
		p.YesVotes++
	case VoteNo:
		p.NoVotes++
	case VoteAbstain:
		p.AbstainVotes++
	}

	if !p.HasVoted(voter) {
		p.Voters = append(p.Voters, voter)
	}
}

// QuorumReached yes >= approval and yes + abstain >= participation
func (p *Proposal) QuorumReached(policy ThresholdPolicy) bool {
	return p.YesVotes >= policy.ApprovalThreshold &&
		p.YesVotes+p.AbstainVotes >= policy.ParticipationThreshold
}
