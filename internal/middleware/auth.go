package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/klofan/hanjie-server/internal/config"
)

type CtxKey int

const (
	CtxAccountClaims CtxKey = iota
)

// Auth parses the auth cookie pair when present and stores the account
// claims in the request context. Requests without valid cookies pass
// through anonymously with the cookies cleared.
func Auth(log *slog.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseAccountClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxAccountClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
