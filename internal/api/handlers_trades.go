package api

import (
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/api/validate"
	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/services"
)

const tradeNotFound = "Trade not found"

// TradeHandler is a thin HTTP transport over TradeService.
type TradeHandler struct {
	svc *services.TradeService
	cfg *config.Config
}

func NewTradeHandler(svc *services.TradeService, cfg *config.Config) *TradeHandler {
	return &TradeHandler{svc: svc, cfg: cfg}
}

// ListTrades GET /trades
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := page(r, h.cfg)
	if err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.ListAll(r.Context(), skip, limit, owner(r)))
}

// GetTrade GET /trades/{id}
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetByID(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

// CreateTrade POST /trades
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var in model.TradeInput
	if err := decodeBody(r, &in); err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	if err := validate.CreateTrade(in); err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	out, err := h.svc.Create(r.Context(), in, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// UpdateTrade PUT /trades/{id}
func (h *TradeHandler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	var u model.TradeUpdate
	if err := decodeBody(r, &u); err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	if err := validate.UpdateTrade(u); err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], u, owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteTrade DELETE /trades/{id}
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Delete(r.Context(), mux.Vars(r)["id"], owner(r))
	if err != nil {
		writeErr(w, h.cfg, err, tradeNotFound)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Trade deleted successfully",
		"deleted_trade": t,
	})
}

// Summary GET /trades/stats/summary
func (h *TradeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.Summary(r.Context(), owner(r)))
}
