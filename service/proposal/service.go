package proposal

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

// New new proposal service
func New(
	database *db.DB,
	proposals core.ProposalStore,
	events core.EventStore,
	organizations core.OrganizationService,
) core.ProposalService {
	return &service{
		db:            database,
		proposals:     proposals,
		events:        events,
		organizations: organizations,
	}
}

type service struct {
	db            *db.DB
	proposals     core.ProposalStore
	events        core.EventStore
	organizations core.OrganizationService
}

// CreateProposal store p as given, replacing any proposal with the same
// trace id. Window ordering and change targets are not validated.
func (s *service) CreateProposal(ctx context.Context, inv *core.Invocation, p *core.Proposal) error {
	if p.OrgID == "" {
		return core.ErrInvalidArgument
	}

	for _, c := range p.Changes {
		if !c.Kind.IsValid() {
			return core.ErrInvalidArgument
		}
	}

	if p.TraceID == "" {
		p.TraceID = uuid.New()
	}

	if p.Proposer == "" {
		p.Proposer = inv.Sender
	}

	log := logger.FromContext(ctx).WithField("proposal", p.TraceID)

	return s.db.Tx(func(tx *db.DB) error {
		if _, err := s.organizations.Authorize(ctx, tx, inv, p.OrgID); err != nil {
			return err
		}

		if err := s.proposals.Create(ctx, tx, p); err != nil {
			log.WithError(err).Errorln("proposals.Create")
			return err
		}

		log.Infof("proposal created by %s", inv.Sender)
		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventProposalCreated, p.TraceID, nil))
	})
}
