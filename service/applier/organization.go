package applier

import (
	"context"

	"dao/core"
	"dao/core/change"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type memberHandler struct {
	orgs   core.OrganizationStore
	events core.EventStore
}

func (h *memberHandler) Handle(ctx context.Context, tx *db.DB, inv *core.Invocation, p *core.Proposal, c core.ProposedChange) error {
	log := logger.FromContext(ctx).WithField("organization", c.Target)

	var req change.MemberReq
	if err := req.UnmarshalBinary(c.Payload); err != nil {
		log.WithError(err).Errorln("decode member change")
		return core.ErrInvalidArgument
	}

	org, err := h.orgs.Find(ctx, tx, c.Target)
	if err != nil {
		log.WithError(err).Errorln("orgs.Find")
		return err
	}

	if org.ID == 0 {
		return core.ErrOrganizationNotFound
	}

	data := core.MemberEventData{Account: req.Account}
	kind := core.EventMemberAdded
	changed := true

	switch req.Action {
	case change.MemberAdd:
		org.AddMember(req.Account)
	case change.MemberRemove:
		kind = core.EventMemberRemoved
		changed = org.RemoveMember(req.Account)
		data.Removed = changed
	}

	if changed {
		if err := h.orgs.Update(ctx, tx, org); err != nil {
			log.WithError(err).Errorln("orgs.Update")
			return err
		}
	}

	return h.events.Create(ctx, tx, core.NewEvent(inv, kind, org.Address, data))
}

type organizationHandler struct {
	orgs   core.OrganizationStore
	events core.EventStore
}

func (h *organizationHandler) Handle(ctx context.Context, tx *db.DB, inv *core.Invocation, p *core.Proposal, c core.ProposedChange) error {
	log := logger.FromContext(ctx).WithField("organization", c.Target)

	var req change.OrganizationReq
	if err := req.UnmarshalBinary(c.Payload); err != nil {
		log.WithError(err).Errorln("decode organization change")
		return core.ErrInvalidArgument
	}

	if req.Policy != nil && !req.Policy.IsValid() {
		return core.ErrInvalidArgument
	}

	org, err := h.orgs.Find(ctx, tx, c.Target)
	if err != nil {
		log.WithError(err).Errorln("orgs.Find")
		return err
	}

	if org.ID == 0 {
		return core.ErrOrganizationNotFound
	}

	org.Apply(req.Update(org.Address))
	if err := h.orgs.Update(ctx, tx, org); err != nil {
		log.WithError(err).Errorln("orgs.Update")
		return err
	}

	return h.events.Create(ctx, tx, core.NewEvent(inv, core.EventOrganizationUpdated, org.Address, nil))
}
