package organization

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// New new organization service
func New(
	database *db.DB,
	system *core.System,
	orgs core.OrganizationStore,
	events core.EventStore,
) core.OrganizationService {
	return &service{
		db:     database,
		system: system,
		orgs:   orgs,
		events: events,
	}
}

type service struct {
	db     *db.DB
	system *core.System
	orgs   core.OrganizationStore
	events core.EventStore
}

// Authorize find the organization and check that inv.Sender may act on it.
// Admins are always authorized.
func (s *service) Authorize(ctx context.Context, tx *db.DB, inv *core.Invocation, orgID string) (*core.Organization, error) {
	log := logger.FromContext(ctx).WithField("organization", orgID)

	org, err := s.orgs.Find(ctx, tx, orgID)
	if err != nil {
		log.WithError(err).Errorln("orgs.Find")
		return nil, err
	}

	if org.ID == 0 {
		return nil, core.ErrOrganizationNotFound
	}

	if s.system.IsAdmin(inv.Sender) {
		return org, nil
	}

	ok := org.HasMember(inv.Sender)
	if !ok && s.system.Policy.LegacyAuthorization {
		if ok, err = s.orgs.IsMember(ctx, tx, inv.Sender); err != nil {
			log.WithError(err).Errorln("orgs.IsMember")
			return nil, err
		}
	}

	if !ok {
		log.Debugf("%s is not a member", inv.Sender)
		return nil, core.ErrAuthorization
	}

	return org, nil
}

func (s *service) authorizeCreate(ctx context.Context, tx *db.DB, inv *core.Invocation, existing, org *core.Organization) (bool, error) {
	if s.system.IsAdmin(inv.Sender) {
		return true, nil
	}

	// legacy: membership of any organization, the first one comes from an admin
	if s.system.Policy.LegacyAuthorization {
		return s.orgs.IsMember(ctx, tx, inv.Sender)
	}

	if existing.ID > 0 {
		return existing.HasMember(inv.Sender), nil
	}

	return org.HasMember(inv.Sender), nil
}

func (s *service) CreateOrganization(ctx context.Context, inv *core.Invocation, org *core.Organization) error {
	log := logger.FromContext(ctx).WithField("organization", org.Address)

	if org.Address == "" || !org.Policy.IsValid() {
		return core.ErrInvalidArgument
	}

	org.Members = core.UniqueMembers(org.Members)

	return s.db.Tx(func(tx *db.DB) error {
		existing, err := s.orgs.Find(ctx, tx, org.Address)
		if err != nil {
			log.WithError(err).Errorln("orgs.Find")
			return err
		}

		ok, err := s.authorizeCreate(ctx, tx, inv, existing, org)
		if err != nil {
			log.WithError(err).Errorln("authorizeCreate")
			return err
		}

		if !ok {
			return core.ErrAuthorization
		}

		if err := s.orgs.Create(ctx, tx, org); err != nil {
			log.WithError(err).Errorln("orgs.Create")
			return err
		}

		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventOrganizationCreated, org.Address, nil))
	})
}

func (s *service) UpdateOrganization(ctx context.Context, inv *core.Invocation, update *core.OrganizationUpdate) error {
	log := logger.FromContext(ctx).WithField("organization", update.Address)

	if p := update.Policy; p != nil && !p.IsValid() {
		return core.ErrInvalidArgument
	}

	return s.db.Tx(func(tx *db.DB) error {
		org, err := s.Authorize(ctx, tx, inv, update.Address)
		if err != nil {
			return err
		}

		org.Apply(update)
		if err := s.orgs.Update(ctx, tx, org); err != nil {
			log.WithError(err).Errorln("orgs.Update")
			return err
		}

		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventOrganizationUpdated, org.Address, nil))
	})
}

func (s *service) AddMember(ctx context.Context, inv *core.Invocation, member core.Member) error {
	log := logger.FromContext(ctx).WithField("organization", member.OrgID)

	if member.Account == "" {
		return core.ErrInvalidArgument
	}

	return s.db.Tx(func(tx *db.DB) error {
		org, err := s.Authorize(ctx, tx, inv, member.OrgID)
		if err != nil {
			return err
		}

		org.AddMember(member.Account)
		if err := s.orgs.Update(ctx, tx, org); err != nil {
			log.WithError(err).Errorln("orgs.Update")
			return err
		}

		data := core.MemberEventData{Account: member.Account}
		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventMemberAdded, org.Address, data))
	})
}

func (s *service) RemoveMember(ctx context.Context, inv *core.Invocation, member core.Member) error {
	log := logger.FromContext(ctx).WithField("organization", member.OrgID)

	return s.db.Tx(func(tx *db.DB) error {
		org, err := s.Authorize(ctx, tx, inv, member.OrgID)
		if err != nil {
			return err
		}

		data := core.MemberEventData{Account: member.Account}
		if data.Removed = org.RemoveMember(member.Account); data.Removed {
			if err := s.orgs.Update(ctx, tx, org); err != nil {
				log.WithError(err).Errorln("orgs.Update")
				return err
			}
		} else {
			log.Debugf("%s not in roster", member.Account)
		}

		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventMemberRemoved, org.Address, data))
	})
}

func (s *service) ChangeThresholds(ctx context.Context, inv *core.Invocation, orgID string, policy core.ThresholdPolicy) error {
	log := logger.FromContext(ctx).WithField("organization", orgID)

	if !policy.IsValid() {
		return core.ErrInvalidArgument
	}

	return s.db.Tx(func(tx *db.DB) error {
		org, err := s.Authorize(ctx, tx, inv, orgID)
		if err != nil {
			return err
		}

		org.Policy = policy
		if err := s.orgs.Update(ctx, tx, org); err != nil {
			log.WithError(err).Errorln("orgs.Update")
			return err
		}

		return s.events.Create(ctx, tx, core.NewEvent(inv, core.EventThresholdsChanged, org.Address, policy))
	})
}

func (s *service) IsMember(ctx context.Context, account string) (bool, error) {
	return s.orgs.IsMember(ctx, nil, account)
}

func (s *service) IsOrganizationMember(ctx context.Context, orgID, account string) (bool, error) {
	org, err := s.orgs.Find(ctx, nil, orgID)
	if err != nil {
		return false, err
	}

	return org.HasMember(account), nil
}
