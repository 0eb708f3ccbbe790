package rest

import (
	"net/http"

	"dao/core"
	"dao/handler/param"
	"dao/handler/render"
	"dao/handler/request"
	"dao/handler/views"

	"github.com/twitchtv/twirp"
)

func handleOrganizations(orgs core.OrganizationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		list, err := orgs.List(ctx, nil, params.Cursor, params.Limit)
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
			"organizations": views.OrganizationViews(list),
			"pagination": render.H{
				"next_cursor": cursor,
				"has_next":    cursor != "",
			},
		})
	}
}

func handleOrganization(orgs core.OrganizationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		org, err := orgs.Find(ctx, nil, param.String(r, "address"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if org.ID == 0 {
			render.Error(w, core.ErrOrganizationNotFound)
			return
		}

		render.JSON(w, views.OrganizationView(*org))
	}
}

func handleCreateOrganization(organizations core.OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Address     string               `json:"address" valid:"required"`
			Name        string               `json:"name"`
			Description string               `json:"description"`
			Members     []string             `json:"members"`
			Policy      core.ThresholdPolicy `json:"policy"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		org := &core.Organization{
			Address:     body.Address,
			Name:        body.Name,
			Description: body.Description,
			Members:     body.Members,
			Policy:      body.Policy,
		}

		inv := request.NewContext(ctx).Invocation()
		if err := organizations.CreateOrganization(ctx, inv, org); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.OrganizationView(*org))
	}
}

func handleUpdateOrganization(organizations core.OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var update core.OrganizationUpdate
		if err := param.Binding(r, &update); err != nil {
			render.Error(w, err)
			return
		}
		update.Address = param.String(r, "address")

		inv := request.NewContext(ctx).Invocation()
		if err := organizations.UpdateOrganization(ctx, inv, &update); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(update.Address, inv))
	}
}

func handleAddMember(organizations core.OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Account string `json:"account" valid:"required"`
		}
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		member := core.Member{
			OrgID:   param.String(r, "address"),
			Account: body.Account,
		}

		inv := request.NewContext(ctx).Invocation()
		if err := organizations.AddMember(ctx, inv, member); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(param.String(r, "address"), inv))
	}
}

func handleRemoveMember(organizations core.OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		member := core.Member{
			OrgID:   param.String(r, "address"),
			Account: param.String(r, "account"),
		}

		inv := request.NewContext(ctx).Invocation()
		if err := organizations.RemoveMember(ctx, inv, member); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(param.String(r, "address"), inv))
	}
}

func handleChangeThresholds(organizations core.OrganizationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var policy core.ThresholdPolicy
		if err := param.Binding(r, &policy); err != nil {
			render.Error(w, err)
			return
		}

		if !policy.IsValid() {
			render.Error(w, twirp.InvalidArgumentError("policy", "thresholds must not be negative"))
			return
		}

		inv := request.NewContext(ctx).Invocation()
		if err := organizations.ChangeThresholds(ctx, inv, param.String(r, "address"), policy); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AckView(param.String(r, "address"), inv))
	}
}
