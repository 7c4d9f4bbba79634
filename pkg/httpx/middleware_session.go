package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/notekeep/pkg/jwtx"
	"github.com/aussiebroadwan/notekeep/pkg/slogx"
)

// SessionMiddleware guards protected routes. It extracts the session token
// from the named cookie, verifies signature and expiry, and injects the
// owner identifier into the request context. It is a pure gate: no state is
// mutated on the way through.
func SessionMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			claims, err := v.Verify(cookie.Value)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			if claims.Subject == "" {
				WriteError(w, http.StatusUnauthorized, "Unauthorized.")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
