package voting

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// New new voting service
func New(
	database *db.DB,
	system *core.System,
	proposals core.ProposalStore,
	events core.EventStore,
	organizations core.OrganizationService,
) core.VotingService {
	return &service{
		db:            database,
		system:        system,
		proposals:     proposals,
		events:        events,
		organizations: organizations,
	}
}

type service struct {
	db            *db.DB
	system        *core.System
	proposals     core.ProposalStore
	events        core.EventStore
	organizations core.OrganizationService
}

func (s *service) Vote(ctx context.Context, inv *core.Invocation, proposalID string, kind core.VoteKind) error {
	log := logger.FromContext(ctx).WithField("proposal", proposalID)

	if !kind.IsValid() {
		return core.ErrInvalidArgument
	}

	return s.db.Tx(func(tx *db.DB) error {
		p, err := s.proposals.Find(ctx, tx, proposalID)
		if err != nil {
			log.WithError(err).Errorln("proposals.Find")
			return err
		}

		if p.ID == 0 {
			return core.ErrProposalNotFound
		}

		if _, err := s.organizations.Authorize(ctx, tx, inv, p.OrgID); err != nil {
			return err
		}

		if !p.InVotingWindow(inv.Time) {
			log.Debugf("vote at %v outside [%v, %v)", inv.Time, p.StartAt, p.EndAt)
			return core.ErrTiming
		}

		if s.system.Policy.DedupVotes && p.HasVoted(inv.Sender) {
			return core.ErrDuplicateVote
		}

		p.Count(inv.Sender, kind)
		if err := s.proposals.Update(ctx, tx, p); err != nil {
			log.WithError(err).Errorln("proposals.Update")
			return err
		}

		log.Infof("proposal voted %s by %s", kind, inv.Sender)
		data := core.VoteEventData{Voter: inv.Sender, Kind: kind.String()}
		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventVoteSubmitted, p.TraceID, data))
	})
}
