package hc

import (
	"net/http"
	"time"

	"dao/handler/render"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle report uptime and version, 503 when the database is unreachable
func Handle(ver string, database *db.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, database))
	return r
}

func handle(version string, database *db.DB) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		status := "ok"
		code := http.StatusOK
		if err := database.View().DB().PingContext(ctx); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("hc: ping database")
			status = "database unavailable"
			code = http.StatusServiceUnavailable
		}

		render.JSONWithStatus(w, code, render.H{
			"uptime":  time.Since(b).Truncate(time.Millisecond).String(),
			"version": version,
			"status":  status,
		})
	}
}
