package auth

import (
	"errors"
	"net/http"

	"github.com/tradejournal/tradejournal-server/internal/api/respond"
)

// StatusFor maps a verification error to its HTTP status.
func StatusFor(err error) int {
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusInternalServerError
	}
	return http.StatusUnauthorized
}

// Middleware rejects requests without a verifiable bearer token and stores
// the caller's Identity in the request context.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearer(r)
			if err == nil {
				var id Identity
				id, err = v.Verify(r.Context(), token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
					return
				}
			}
			status := StatusFor(err)
			if status == http.StatusUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			respond.WriteError(w, status, err.Error())
		})
	}
}
