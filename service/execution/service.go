package execution

import (
	"context"
	"database/sql"

	"dao/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// New new execution service
func New(
	database *db.DB,
	system *core.System,
	proposals core.ProposalStore,
	events core.EventStore,
	organizations core.OrganizationService,
	applier core.ChangeApplier,
) core.ExecutionService {
	return &service{
		db:            database,
		system:        system,
		proposals:     proposals,
		events:        events,
		organizations: organizations,
		applier:       applier,
	}
}

type service struct {
	db            *db.DB
	system        *core.System
	proposals     core.ProposalStore
	events        core.EventStore
	organizations core.OrganizationService
	applier       core.ChangeApplier
}

// Execute apply the changes of a proposal whose voting window has closed
// with quorum reached. Any failing change rolls back the whole execution.
func (s *service) Execute(ctx context.Context, inv *core.Invocation, proposalID string) error {
	log := logger.FromContext(ctx).WithField("proposal", proposalID)

	return s.db.Tx(func(tx *db.DB) error {
		p, err := s.proposals.Find(ctx, tx, proposalID)
		if err != nil {
			log.WithError(err).Errorln("proposals.Find")
			return err
		}

		if p.ID == 0 {
			return core.ErrProposalNotFound
		}

		orgID := p.OrgID
		if orgID == "" {
			// rows created before proposals carried an organization
			log.Warnf("proposal without org_id, resolving organization by proposer %s", p.Proposer)
			orgID = p.Proposer
		}

		org, err := s.organizations.Authorize(ctx, tx, inv, orgID)
		if err != nil {
			return err
		}

		if p.Executed && s.system.Policy.GuardExecuted {
			return core.ErrAlreadyExecuted
		}

		if !p.VotingClosed(inv.Time) {
			log.Debugf("execute at %v before %v", inv.Time, p.EndAt)
			return core.ErrTiming
		}

		if !p.QuorumReached(org.Policy) {
			log.Debugf("quorum not reached: yes %d abstain %d, policy %+v", p.YesVotes, p.AbstainVotes, org.Policy)
			return core.ErrQuorum
		}

		for idx, change := range p.Changes {
			if err := s.applier.Apply(ctx, tx, inv, p, change); err != nil {
				log.WithError(err).Errorf("apply change #%d (%s)", idx, change.Kind)
				return err
			}
		}

		p.Executed = true
		p.ExecutedAt = sql.NullTime{Time: inv.Time, Valid: true}
		if err := s.proposals.Update(ctx, tx, p); err != nil {
			log.WithError(err).Errorln("proposals.Update")
			return err
		}

		log.Infof("proposal executed by %s", inv.Sender)
		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventProposalExecuted, p.TraceID, nil))
	})
}
