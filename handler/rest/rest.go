package rest

import (
	"net/http"

	"dao/core"
	"dao/handler/auth"
	"dao/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Services what the rest api reads and drives
type Services struct {
	Organizations core.OrganizationStore
	Proposals     core.ProposalStore
	Events        core.EventStore

	Organizationz core.OrganizationService
	Proposalz     core.ProposalService
	Voting        core.VotingService
	Execution     core.ExecutionService
}

// Handle handle rest api request
func Handle(s Services) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Route("/organizations", func(r chi.Router) {
		r.Get("/", handleOrganizations(s.Organizations))
		r.Get("/{address}", handleOrganization(s.Organizations))

		r.Group(func(r chi.Router) {
			r.Use(auth.LoginRequired)
			r.Post("/", handleCreateOrganization(s.Organizationz))
			r.Put("/{address}", handleUpdateOrganization(s.Organizationz))
			r.Post("/{address}/members", handleAddMember(s.Organizationz))
			r.Delete("/{address}/members/{account}", handleRemoveMember(s.Organizationz))
			r.Put("/{address}/thresholds", handleChangeThresholds(s.Organizationz))
		})
	})

	router.Route("/proposals", func(r chi.Router) {
		r.Get("/", handleProposals(s.Proposals))
		r.Get("/{id}", handleProposal(s.Proposals, s.Organizations))

		r.Group(func(r chi.Router) {
			r.Use(auth.LoginRequired)
			r.Post("/", handleCreateProposal(s.Proposalz))
			r.Post("/{id}/votes", handleVote(s.Voting))
			r.Post("/{id}/execute", handleExecute(s.Execution))
		})
	})

	router.Get("/events", handleEvents(s.Events))

	return router
}
