package recovery

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/tradejournal/tradejournal-server/internal/api/respond"
)

// Middleware intercepts panics from downstream handlers, logs details, and
// returns HTTP 500. With verbose set the panic value is echoed to the client;
// production deployments keep it generic.
func Middleware(verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("remote", r.RemoteAddr).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					msg := "internal server error"
					if verbose {
						msg = fmt.Sprintf("panic: %v", rec)
					}
					respond.WriteInternalError(w, msg)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
