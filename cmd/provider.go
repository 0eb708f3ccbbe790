package cmd

import (
	"time"

	"dao/core"
	"dao/handler/rest"
	"dao/service/applier"
	"dao/service/execution"
	"dao/service/notifier"
	"dao/service/organization"
	"dao/service/proposal"
	"dao/service/voting"
	"dao/store/cursor"
	"dao/store/event"
	orgstore "dao/store/organization"
	proposalstore "dao/store/proposal"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/spf13/cast"

	// sqlite, mysql and postgres dialects
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideSystem() *core.System {
	return &core.System{
		Admins:  cfg.Admins,
		Policy:  cfg.Policy,
		Version: rootCmd.Version,
	}
}

// ---------------store-----------------------------------------

func provideOrganizationStore(db *db.DB) core.OrganizationStore {
	return orgstore.Cache(orgstore.New(db), cfg.Cache.Size, cacheExpiration())
}

func provideProposalStore(db *db.DB) core.ProposalStore {
	return proposalstore.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

func provideCursorStore(db *db.DB) core.CursorStore {
	return cursor.New(propertystore.New(db))
}

// ------------------service------------------------------------

type services struct {
	orgs      core.OrganizationStore
	proposals core.ProposalStore
	events    core.EventStore

	organizations core.OrganizationService
	proposalz     core.ProposalService
	voting        core.VotingService
	execution     core.ExecutionService
}

func provideServices(db *db.DB, system *core.System) services {
	s := services{
		orgs:      provideOrganizationStore(db),
		proposals: provideProposalStore(db),
		events:    provideEventStore(db),
	}

	s.organizations = organization.New(db, system, s.orgs, s.events)
	s.proposalz = proposal.New(db, s.proposals, s.events, s.organizations)
	s.voting = voting.New(db, system, s.proposals, s.events, s.organizations)
	s.execution = execution.New(db, system, s.proposals, s.events, s.organizations, applier.New(s.orgs, s.events))
	return s
}

func (s services) rest() rest.Services {
	return rest.Services{
		Organizations: s.orgs,
		Proposals:     s.proposals,
		Events:        s.events,
		Organizationz: s.organizations,
		Proposalz:     s.proposalz,
		Voting:        s.voting,
		Execution:     s.execution,
	}
}

func provideEventNotifier() core.EventNotifier {
	notifiers := []core.EventNotifier{notifier.Log()}

	if url := cfg.Notifier.Webhook; url != "" {
		notifiers = append(notifiers, notifier.Webhook(url))
	}

	if sink := cfg.Notifier.Mixin; sink.Enabled {
		client, err := mixin.NewFromKeystore(&sink.Keystore)
		if err != nil {
			panic(err)
		}

		notifiers = append(notifiers, notifier.Mixin(client, sink.ClientID, cfg.Admins))
	}

	return notifier.Multi(notifiers...)
}

func cacheExpiration() time.Duration {
	return cast.ToDuration(cfg.Cache.Expiration)
}
