package rest

import (
	"net/http"

	"dao/core"
	"dao/handler/render"
	"dao/handler/views"
)

func handleEvents(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		list, err := events.List(ctx, nil, params.Cursor, params.Limit)
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
			"events": views.EventViews(list),
			"pagination": render.H{
				"next_cursor": cursor,
				"has_next":    cursor != "",
			},
		})
	}
}
