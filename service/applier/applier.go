package applier

import (
	"context"

	"dao/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Applier dispatch proposed changes by kind. UpdateMember and UpdateDAO
// have built-in handlers, Other changes go to the handler registered for
// their target.
type Applier struct {
	handlers map[core.ChangeKind]core.ChangeHandler
	external map[string]core.ChangeHandler
}

// New new applier with the built-in organization handlers
func New(orgs core.OrganizationStore, events core.EventStore) *Applier {
	return &Applier{
		handlers: map[core.ChangeKind]core.ChangeHandler{
			core.ChangeKindUpdateMember: &memberHandler{orgs: orgs, events: events},
			core.ChangeKindUpdateDAO:    &organizationHandler{orgs: orgs, events: events},
		},
		external: map[string]core.ChangeHandler{},
	}
}

// Handle replace the handler of a built-in kind
func (a *Applier) Handle(kind core.ChangeKind, h core.ChangeHandler) *Applier {
	a.handlers[kind] = h
	return a
}

// Register handle Other changes addressed to target
func (a *Applier) Register(target string, h core.ChangeHandler) *Applier {
	a.external[target] = h
	return a
}

func (a *Applier) Apply(ctx context.Context, tx *db.DB, inv *core.Invocation, p *core.Proposal, change core.ProposedChange) error {
	log := logger.FromContext(ctx).WithField("target", change.Target)

	switch change.Kind {
	case core.ChangeKindUpdateMember, core.ChangeKindUpdateDAO:
		h, ok := a.handlers[change.Kind]
		if !ok {
			log.Warnf("no handler for %s", change.Kind)
			return nil
		}

		return h.Handle(ctx, tx, inv, p, change)

	case core.ChangeKindOther:
		h, ok := a.external[change.Target]
		if !ok {
			log.Debugln("no external handler, skip")
			return nil
		}

		return h.Handle(ctx, tx, inv, p, change)

	default:
		log.Errorf("unknown change kind %d", change.Kind)
		return core.ErrInvalidArgument
	}
}
