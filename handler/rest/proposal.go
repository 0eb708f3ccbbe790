package rest

import (
	"net/http"
	"time"

	"dao/core"
	"dao/handler/param"
	"dao/handler/render"
	"dao/handler/request"
	"dao/handler/views"

	"github.com/fox-one/pkg/logger"
)

func handleProposals(proposals core.ProposalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		list, err := proposals.List(ctx, nil, params.Cursor, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		var lastID int64
		if len(list) > 0 {
			lastID = list[len(list)-1].ID
		}
		cursor := nextCursor(len(list), params.Limit, lastID)

		render.JSON(w, render.H{
			"proposals": views.ProposalViews(list),
			"pagination": render.H{
				"next_cursor": cursor,
				"has_next":    cursor != "",
			},
		})
	}
}

func handleProposal(proposals core.ProposalStore, orgs core.OrganizationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		p, err := proposals.Find(ctx, nil, param.String(r, "id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if p.ID == 0 {
			render.Error(w, core.ErrProposalNotFound)
			return
		}

		view := views.ProposalView(*p)
		if org, err := orgs.Find(ctx, nil, p.OrgID); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("orgs.Find")
		} else if org.ID > 0 {
			view = view.WithPolicy(org.Policy)
		}

		render.JSON(w, view)
	}
}

func handleCreateProposal(proposalz core.ProposalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			ID          string                `json:"id" valid:"uuid"`
			OrgID       string                `json:"org_id" valid:"required"`
			Title       string                `json:"title"`
			Description string                `json:"description"`
			StartAt     time.Time             `json:"start_at"`
			EndAt       time.Time             `json:"end_at"`
			Changes     []core.ProposedChange `json:"changes"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		p := &core.Proposal{
			TraceID:     body.ID,
			OrgID:       body.OrgID,
			Title:       body.Title,
			Description: body.Description,
			StartAt:     body.StartAt,
			EndAt:       body.EndAt,
			Changes:     body.Changes,
		}

		inv := request.NewContext(ctx).Invocation()
		if err := proposalz.CreateProposal(ctx, inv, p); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ProposalView(*p))
	}
}

func handleVote(voting core.VotingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Kind string `json:"kind" valid:"in(yes|no|abstain),required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		inv := request.NewContext(ctx).Invocation()
		if err := voting.Vote(ctx, inv, param.String(r, "id"), core.ParseVoteKind(body.Kind)); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(param.String(r, "id"), inv))
	}
}

func handleExecute(execution core.ExecutionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		inv := request.NewContext(ctx).Invocation()
		if err := execution.Execute(ctx, inv, param.String(r, "id")); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(param.String(r, "id"), inv))
	}
}
