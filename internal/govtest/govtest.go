// Package govtest wires the governance services over an in-memory database
// for tests.
package govtest

import (
	"context"
	"testing"
	"time"

	"dao/core"
	"dao/internal/dbtest"
	"dao/service/applier"
	"dao/service/execution"
	"dao/service/organization"
	"dao/service/proposal"
	"dao/service/voting"
	"dao/store/event"
	orgstore "dao/store/organization"
	proposalstore "dao/store/proposal"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/require"
)

// Env services sharing one database
type Env struct {
	DB        *db.DB
	System    *core.System
	Orgs      core.OrganizationStore
	Proposals core.ProposalStore
	Events    core.EventStore

	Organizations core.OrganizationService
	Proposer      core.ProposalService
	Voting        core.VotingService
	Applier       *applier.Applier
	Execution     core.ExecutionService
}

// New env with "root" as the only admin
func New(t *testing.T) *Env {
	database := dbtest.Open(t)

	env := &Env{
		DB:        database,
		System:    &core.System{Admins: []string{"root"}},
		Orgs:      orgstore.New(database),
		Proposals: proposalstore.New(database),
		Events:    event.New(database),
	}

	env.Organizations = organization.New(database, env.System, env.Orgs, env.Events)
	env.Proposer = proposal.New(database, env.Proposals, env.Events, env.Organizations)
	env.Voting = voting.New(database, env.System, env.Proposals, env.Events, env.Organizations)
	env.Applier = applier.New(env.Orgs, env.Events)
	env.Execution = execution.New(database, env.System, env.Proposals, env.Events, env.Organizations, env.Applier)
	return env
}

// At invocation by sender at unix second sec
func At(sender string, sec int64) *core.Invocation {
	return core.NewInvocation(sender, time.Unix(sec, 0))
}

// Window start and end of a voting window in unix seconds
func Window(p *core.Proposal, start, end int64) *core.Proposal {
	p.StartAt = time.Unix(start, 0)
	p.EndAt = time.Unix(end, 0)
	return p
}

// EventKinds kinds of every event written so far
func (e *Env) EventKinds(t *testing.T) []core.EventKind {
	list, err := e.Events.List(context.Background(), nil, 0, 1000)
	require.NoError(t, err)

	kinds := make([]core.EventKind, 0, len(list))
	for _, event := range list {
		kinds = append(kinds, event.Kind)
	}

	return kinds
}

// Organization read an organization, failing the test when missing
func (e *Env) Organization(t *testing.T, address string) *core.Organization {
	org, err := e.Orgs.Find(context.Background(), nil, address)
	require.NoError(t, err)
	require.NotZero(t, org.ID, "organization %s", address)
	return org
}

// Proposal read a proposal, failing the test when missing
func (e *Env) Proposal(t *testing.T, id string) *core.Proposal {
	p, err := e.Proposals.Find(context.Background(), nil, id)
	require.NoError(t, err)
	require.NotZero(t, p.ID, "proposal %s", id)
	return p
}
