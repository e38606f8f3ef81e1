package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/api/recovery"
	"github.com/tradejournal/tradejournal-server/internal/auth"
	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/services"
)

// NewRouter wires HTTP routes to handlers. Everything except the root,
// health, metrics and token exchange endpoints requires a bearer token.
func NewRouter(svcs *services.Services, verifier auth.Verifier, cfg *config.Config, healthReporter HealthReporter, log zerolog.Logger) http.Handler {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(!cfg.IsProduction()), Metrics)

	// Public
	healthHandler := NewHealthHandler(healthReporter)
	root.HandleFunc("/", healthHandler.Root).Methods("GET")
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")
	authHandler := NewAuthHandler(verifier)
	root.HandleFunc("/auth/firebase", authHandler.ExchangeFirebaseToken).Methods("POST")

	authed := root.NewRoute().Subrouter()
	authed.Use(auth.Middleware(verifier))

	// Trades; the summary route is registered before {id} so it is not captured.
	trades := NewTradeHandler(svcs.Trades, cfg)
	authed.HandleFunc("/trades", trades.ListTrades).Methods("GET")
	authed.HandleFunc("/trades", trades.CreateTrade).Methods("POST")
	authed.HandleFunc("/trades/stats/summary", trades.Summary).Methods("GET")
	authed.HandleFunc("/trades/{id}", trades.GetTrade).Methods("GET")
	authed.HandleFunc("/trades/{id}", trades.UpdateTrade).Methods("PUT")
	authed.HandleFunc("/trades/{id}", trades.DeleteTrade).Methods("DELETE")

	// Tags
	for prefix, h := range map[string]*TagHandler{
		"/emotions":      NewEmotionHandler(svcs.Emotions, cfg),
		"/confirmations": NewConfirmationHandler(svcs.Confirmations, cfg),
	} {
		authed.HandleFunc(prefix, h.List).Methods("GET")
		authed.HandleFunc(prefix, h.Create).Methods("POST")
		authed.HandleFunc(prefix+"/{id}", h.Get).Methods("GET")
		authed.HandleFunc(prefix+"/{id}", h.Update).Methods("PUT")
		authed.HandleFunc(prefix+"/{id}", h.Delete).Methods("DELETE")
	}

	// Day journal
	journal := NewDayJournalHandler(svcs.DayJournals, cfg)
	authed.HandleFunc("/day-journal", journal.List).Methods("GET")
	authed.HandleFunc("/day-journal", journal.Create).Methods("POST")
	authed.HandleFunc("/day-journal/range", journal.Range).Methods("GET")
	authed.HandleFunc("/day-journal/{id}", journal.Get).Methods("GET")
	authed.HandleFunc("/day-journal/{id}", journal.Update).Methods("PUT")
	authed.HandleFunc("/day-journal/{id}", journal.Delete).Methods("DELETE")

	// Export
	export := NewExportHandler(svcs.Export, log)
	authed.HandleFunc("/export/all", export.ExportAll).Methods("GET")

	return CORS(cfg.AllowedOrigins)(root)
}
