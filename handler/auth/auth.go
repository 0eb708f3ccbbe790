package auth

import (
	"net/http"
	"strings"

	"dao/handler/render"
	"dao/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

// CallerHeader carries the identity of the caller. Requests are not
// signed, the host in front of the api is trusted to set it.
const CallerHeader = "X-Caller-Id"

// HandleAuthentication put the caller into the request context
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			caller := strings.TrimSpace(r.Header.Get(CallerHeader))
			if caller == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx = logger.WithContext(ctx, logger.FromContext(ctx).WithField("caller", caller))
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithCaller(caller)))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired reject requests without a caller
func LoginRequired(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.NewContext(r.Context()).GetCaller(); !ok {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, "missing "+CallerHeader))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
